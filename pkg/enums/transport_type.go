package enums

import "fmt"

// TransportType classifies a rentable vehicle.
type TransportType string

const (
	TransportTypeCar     TransportType = "CAR"
	TransportTypeBus     TransportType = "BUS"
	TransportTypeTruck   TransportType = "TRUCK"
	TransportTypeBike    TransportType = "BIKE"
	TransportTypeBicycle TransportType = "BICYCLE"
)

var validTransportTypes = []TransportType{
	TransportTypeCar,
	TransportTypeBus,
	TransportTypeTruck,
	TransportTypeBike,
	TransportTypeBicycle,
}

// String implements fmt.Stringer.
func (t TransportType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransportType.
func (t TransportType) IsValid() bool {
	for _, candidate := range validTransportTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransportType converts raw input into a TransportType.
func ParseTransportType(value string) (TransportType, error) {
	for _, candidate := range validTransportTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transport type %q", value)
}
