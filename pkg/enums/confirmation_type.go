package enums

import "fmt"

// ConfirmationType is the supplier's answer on the quantity step of the award wizard.
type ConfirmationType string

const (
	ConfirmationTypeFull     ConfirmationType = "full"
	ConfirmationTypePartial  ConfirmationType = "partial"
	ConfirmationTypeWithdraw ConfirmationType = "withdraw"
)

var validConfirmationTypes = []ConfirmationType{
	ConfirmationTypeFull,
	ConfirmationTypePartial,
	ConfirmationTypeWithdraw,
}

// String implements fmt.Stringer.
func (c ConfirmationType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConfirmationType.
func (c ConfirmationType) IsValid() bool {
	for _, candidate := range validConfirmationTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// AwardStatus maps a supply confirmation onto the resulting award status.
func (c ConfirmationType) AwardStatus() AwardStatus {
	switch c {
	case ConfirmationTypeFull:
		return AwardStatusConfirmed
	case ConfirmationTypePartial:
		return AwardStatusPartiallyConfirmed
	case ConfirmationTypeWithdraw:
		return AwardStatusWithdrawn
	}
	return AwardStatusPendingConfirmation
}

// ParseConfirmationType converts raw input into a ConfirmationType.
func ParseConfirmationType(value string) (ConfirmationType, error) {
	for _, candidate := range validConfirmationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid confirmation type %q", value)
}
