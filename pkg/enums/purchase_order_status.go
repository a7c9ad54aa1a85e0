package enums

import "fmt"

// PurchaseOrderStatus tracks the review lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft               PurchaseOrderStatus = "draft"
	PurchaseOrderStatusClearedByCommercial PurchaseOrderStatus = "cleared_by_commercial"
	PurchaseOrderStatusSubmitted           PurchaseOrderStatus = "submitted"
	PurchaseOrderStatusConfirmed           PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusPartiallyConfirmed  PurchaseOrderStatus = "partially_confirmed"
)

var validPurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderStatusDraft,
	PurchaseOrderStatusClearedByCommercial,
	PurchaseOrderStatusSubmitted,
	PurchaseOrderStatusConfirmed,
	PurchaseOrderStatusPartiallyConfirmed,
}

// PurchaseOrderStatuses returns every known status in lifecycle order.
func PurchaseOrderStatuses() []PurchaseOrderStatus {
	out := make([]PurchaseOrderStatus, len(validPurchaseOrderStatuses))
	copy(out, validPurchaseOrderStatuses)
	return out
}

// String implements fmt.Stringer.
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PurchaseOrderStatus.
func (s PurchaseOrderStatus) IsValid() bool {
	for _, candidate := range validPurchaseOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePurchaseOrderStatus converts raw input into a PurchaseOrderStatus.
func ParsePurchaseOrderStatus(value string) (PurchaseOrderStatus, error) {
	for _, candidate := range validPurchaseOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase order status %q", value)
}
