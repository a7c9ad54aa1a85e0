package enums

import "fmt"

// AwardStatus tracks a supplier's response to an award.
type AwardStatus string

const (
	AwardStatusPendingConfirmation AwardStatus = "pending_confirmation"
	AwardStatusConfirmed           AwardStatus = "confirmed"
	AwardStatusPartiallyConfirmed  AwardStatus = "partially_confirmed"
	AwardStatusWithdrawn           AwardStatus = "withdrawn"
)

var validAwardStatuses = []AwardStatus{
	AwardStatusPendingConfirmation,
	AwardStatusConfirmed,
	AwardStatusPartiallyConfirmed,
	AwardStatusWithdrawn,
}

// String implements fmt.Stringer.
func (s AwardStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AwardStatus.
func (s AwardStatus) IsValid() bool {
	for _, candidate := range validAwardStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition may leave the status.
func (s AwardStatus) IsTerminal() bool {
	switch s {
	case AwardStatusConfirmed, AwardStatusPartiallyConfirmed, AwardStatusWithdrawn:
		return true
	}
	return false
}

// ParseAwardStatus converts raw input into an AwardStatus.
func ParseAwardStatus(value string) (AwardStatus, error) {
	for _, candidate := range validAwardStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid award status %q", value)
}
