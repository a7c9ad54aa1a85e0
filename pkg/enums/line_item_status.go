package enums

import "fmt"

// LineItemStatus records the supplier outcome for one purchase order line.
type LineItemStatus string

const (
	LineItemStatusPending            LineItemStatus = "pending"
	LineItemStatusConfirmed          LineItemStatus = "confirmed"
	LineItemStatusPartiallyConfirmed LineItemStatus = "partially_confirmed"
	LineItemStatusRejected           LineItemStatus = "rejected"
)

var validLineItemStatuses = []LineItemStatus{
	LineItemStatusPending,
	LineItemStatusConfirmed,
	LineItemStatusPartiallyConfirmed,
	LineItemStatusRejected,
}

// String implements fmt.Stringer.
func (l LineItemStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LineItemStatus.
func (l LineItemStatus) IsValid() bool {
	for _, candidate := range validLineItemStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// IsResolved reports whether the supplier has answered for the line.
func (l LineItemStatus) IsResolved() bool {
	return l == LineItemStatusConfirmed || l == LineItemStatusPartiallyConfirmed || l == LineItemStatusRejected
}

// LineItemStatusForAward maps a terminal award status onto the line status it implies.
func LineItemStatusForAward(status AwardStatus) LineItemStatus {
	switch status {
	case AwardStatusConfirmed:
		return LineItemStatusConfirmed
	case AwardStatusPartiallyConfirmed:
		return LineItemStatusPartiallyConfirmed
	case AwardStatusWithdrawn:
		return LineItemStatusRejected
	}
	return LineItemStatusPending
}

// ParseLineItemStatus converts raw input into a LineItemStatus.
func ParseLineItemStatus(value string) (LineItemStatus, error) {
	for _, candidate := range validLineItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line item status %q", value)
}
