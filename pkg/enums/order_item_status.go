package enums

import "fmt"

// OrderItemStatus tracks an order line from quotation through supplier confirmation.
type OrderItemStatus string

const (
	OrderItemStatusQuotationReady       OrderItemStatus = "quotation_ready"
	OrderItemStatusQuotationSelected    OrderItemStatus = "quotation_selected"
	OrderItemStatusPOSubmitted          OrderItemStatus = "po_submitted"
	OrderItemStatusSupplierYetToConfirm OrderItemStatus = "supplier_yet_to_confirm"
	OrderItemStatusConfirmedForSupply   OrderItemStatus = "confirmed_for_supply"
)

var validOrderItemStatuses = []OrderItemStatus{
	OrderItemStatusQuotationReady,
	OrderItemStatusQuotationSelected,
	OrderItemStatusPOSubmitted,
	OrderItemStatusSupplierYetToConfirm,
	OrderItemStatusConfirmedForSupply,
}

// String implements fmt.Stringer.
func (s OrderItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderItemStatus.
func (s OrderItemStatus) IsValid() bool {
	for _, candidate := range validOrderItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderItemStatus converts raw input into an OrderItemStatus.
func ParseOrderItemStatus(value string) (OrderItemStatus, error) {
	for _, candidate := range validOrderItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order item status %q", value)
}
