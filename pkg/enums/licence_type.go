package enums

import "fmt"

// LicenceType is the driving licence category a transport requires.
type LicenceType string

const (
	LicenceTypeA LicenceType = "A"
	LicenceTypeB LicenceType = "B"
	LicenceTypeC LicenceType = "C"
	LicenceTypeD LicenceType = "D"
)

var validLicenceTypes = []LicenceType{
	LicenceTypeA,
	LicenceTypeB,
	LicenceTypeC,
	LicenceTypeD,
}

// String implements fmt.Stringer.
func (l LicenceType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LicenceType.
func (l LicenceType) IsValid() bool {
	for _, candidate := range validLicenceTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLicenceType converts raw input into a LicenceType.
func ParseLicenceType(value string) (LicenceType, error) {
	for _, candidate := range validLicenceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid licence type %q", value)
}
