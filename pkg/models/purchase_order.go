package models

import (
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is the procurement document sent to a supplier.
type PurchaseOrder struct {
	ID                 string                    `json:"id"`
	PONumber           string                    `json:"po_number"`
	Supplier           string                    `json:"supplier"`
	CycleName          string                    `json:"cycle_name"`
	CycleID            string                    `json:"cycle_id"`
	Status             enums.PurchaseOrderStatus `json:"status"`
	TotalAmount        decimal.Decimal           `json:"total_amount"`
	Currency           enums.Currency            `json:"currency"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
	LegalEntity        string                    `json:"legal_entity"`
	LegalEntityAbbrev  string                    `json:"legal_entity_abbrev"`
	VendorAddress      string                    `json:"vendor_address"`
	VendorContact      string                    `json:"vendor_contact"`
	VendorEmail        string                    `json:"vendor_email"`
	BillToEntity       string                    `json:"bill_to_entity"`
	BillToAddress      string                    `json:"bill_to_address"`
	ShipToName         string                    `json:"ship_to_name"`
	ShipToAddress      string                    `json:"ship_to_address"`
	ShipToCity         string                    `json:"ship_to_city"`
	ShipToCountry      string                    `json:"ship_to_country"`
	Terms              string                    `json:"terms"`
	ReferenceNumber    string                    `json:"reference_number"`
	Date               string                    `json:"date"`
	Incoterm           string                    `json:"incoterm"`
	VATPercent         decimal.Decimal           `json:"vat_percent"`
	LineItems          []POLineItem              `json:"line_items"`
	SourceOrderItemIDs []string                  `json:"source_order_item_ids"`
}

// POLineItem is one product line owned by a PurchaseOrder.
type POLineItem struct {
	ID                string               `json:"id"`
	Product           string               `json:"product"`
	Description       string               `json:"description"`
	Quantity          int64                `json:"quantity"`
	UnitPrice         decimal.Decimal      `json:"unit_price"`
	PackSize          int                  `json:"pack_size"`
	PackPrice         decimal.Decimal      `json:"pack_price"`
	Amount            decimal.Decimal      `json:"amount"`
	Status            enums.LineItemStatus `json:"status,omitempty"`
	ConfirmedQuantity *int64               `json:"confirmed_quantity,omitempty"`
}

// Clone returns a deep copy that shares no slices or pointers with p.
func (p PurchaseOrder) Clone() PurchaseOrder {
	out := p
	if p.LineItems != nil {
		out.LineItems = make([]POLineItem, len(p.LineItems))
		for i, line := range p.LineItems {
			out.LineItems[i] = line.Clone()
		}
	}
	if p.SourceOrderItemIDs != nil {
		out.SourceOrderItemIDs = append([]string(nil), p.SourceOrderItemIDs...)
	}
	return out
}

func (l POLineItem) Clone() POLineItem {
	out := l
	if l.ConfirmedQuantity != nil {
		qty := *l.ConfirmedQuantity
		out.ConfirmedQuantity = &qty
	}
	return out
}

// LineItemsTotal sums the line amounts.
func (p PurchaseOrder) LineItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range p.LineItems {
		total = total.Add(line.Amount)
	}
	return total
}
