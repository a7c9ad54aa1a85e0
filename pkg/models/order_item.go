package models

import (
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderItem is a single ordered SKU line awaiting purchase order creation.
type OrderItem struct {
	ID               string                `json:"id"`
	OrderNumber      string                `json:"order_number"`
	BuyerName        string                `json:"buyer_name"`
	ProductName      string                `json:"product_name"`
	Description      string                `json:"description"`
	Quantity         int64                 `json:"quantity"`
	UnitPrice        decimal.Decimal       `json:"unit_price"`
	PackSize         int                   `json:"pack_size"`
	PackPrice        decimal.Decimal       `json:"pack_price"`
	Currency         enums.Currency        `json:"currency"`
	Status           enums.OrderItemStatus `json:"status"`
	SelectedSupplier string                `json:"selected_supplier"`
	SupplierOrgID    string                `json:"supplier_org_id"`
	Incoterm         string                `json:"incoterm"`
	IncotermLocation string                `json:"incoterm_location"`
	ShipToCity       string                `json:"ship_to_city"`
	ShipToCountry    string                `json:"ship_to_country"`
	ShipToAddress    string                `json:"ship_to_address"`
	CycleName        string                `json:"cycle_name"`
	CycleID          string                `json:"cycle_id"`
	BuyerPONumber    string                `json:"buyer_po_number,omitempty"`
}

// LineTotal is quantity times unit price. Pack price is informational only.
func (o OrderItem) LineTotal() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(o.Quantity))
}
