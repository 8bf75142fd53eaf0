package enums

import "fmt"

// TransportStatus tracks whether a transport is currently rented out.
type TransportStatus string

const (
	TransportStatusFree   TransportStatus = "FREE"
	TransportStatusInRent TransportStatus = "IN_RENT"
)

var validTransportStatuses = []TransportStatus{
	TransportStatusFree,
	TransportStatusInRent,
}

// String implements fmt.Stringer.
func (s TransportStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TransportStatus.
func (s TransportStatus) IsValid() bool {
	for _, candidate := range validTransportStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTransportStatus converts raw input into a TransportStatus.
func ParseTransportStatus(value string) (TransportStatus, error) {
	for _, candidate := range validTransportStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transport status %q", value)
}
