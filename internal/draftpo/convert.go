package draftpo

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultPaymentTerms = "Net 60 on Delivery"
	vendorAddressNA     = "N/A"
	draftDateLayout     = "2006-01-02"
)

// Directory resolves reference data needed to fill a purchase order header.
type Directory interface {
	SupplierOrg(id string) (models.SupplierOrg, bool)
	LegalEntity(id string) (models.LegalEntity, bool)
}

// DraftID formats the identifier for the counter-th draft PO.
func DraftID(counter int) string {
	return fmt.Sprintf("po-draft-%03d", counter)
}

// DraftNumber formats the human PO number for the counter-th draft PO.
func DraftNumber(counter int) string {
	return fmt.Sprintf("DRAFT-%03d", counter)
}

// ConvertGroup builds a draft purchase order from group. It is a pure function
// of its arguments; counter and now are supplied by the owning store.
func ConvertGroup(group Group, counter int, dir Directory, now time.Time) models.PurchaseOrder {
	var first models.OrderItem
	if len(group.Items) > 0 {
		first = group.Items[0]
	}

	poID := DraftID(counter)
	entity := ResolveLegalEntity(dir, group.ShipToCountry)

	vendorAddress := vendorAddressNA
	var vendorContact, vendorEmail string
	if dir != nil {
		if org, ok := dir.SupplierOrg(group.SupplierOrgID); ok {
			vendorAddress = fmt.Sprintf("%s, %s, %s", org.Address, org.City, org.Country)
			if contact, ok := org.PrimaryContact(); ok {
				vendorContact = contact.Name
				vendorEmail = contact.Email
			}
		}
	}

	lines := make([]models.POLineItem, 0, len(group.Items))
	total := decimal.Zero
	for idx, item := range group.Items {
		amount := item.LineTotal()
		total = total.Add(amount)
		lines = append(lines, models.POLineItem{
			ID:          fmt.Sprintf("li-%s-%d", poID, idx+1),
			Product:     item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			PackSize:    item.PackSize,
			PackPrice:   item.PackPrice,
			Amount:      amount,
		})
	}

	return models.PurchaseOrder{
		ID:                 poID,
		PONumber:           DraftNumber(counter),
		Supplier:           group.SupplierName,
		CycleName:          first.CycleName,
		CycleID:            first.CycleID,
		Status:             enums.PurchaseOrderStatusDraft,
		TotalAmount:        total,
		Currency:           first.Currency,
		CreatedAt:          now,
		UpdatedAt:          now,
		LegalEntity:        entity.Name,
		LegalEntityAbbrev:  entity.Abbreviation,
		VendorAddress:      vendorAddress,
		VendorContact:      vendorContact,
		VendorEmail:        vendorEmail,
		BillToEntity:       entity.Name,
		BillToAddress:      entity.Address,
		ShipToName:         first.BuyerName,
		ShipToAddress:      first.ShipToAddress,
		ShipToCity:         group.ShipToCity,
		ShipToCountry:      group.ShipToCountry,
		Terms:              DefaultPaymentTerms,
		ReferenceNumber:    ReferenceNumber(first.CycleID, group.SupplierName, group.ShipToCountry),
		Date:               now.Format(draftDateLayout),
		Incoterm:           strings.TrimSpace(group.Incoterm + " " + group.IncotermLocation),
		VATPercent:         decimal.Zero,
		LineItems:          lines,
		SourceOrderItemIDs: group.ItemIDs(),
	}
}

// ReferenceNumber builds REF-<cycle>-<SUP>-<CO> from the cycle id, supplier and country.
func ReferenceNumber(cycleID, supplier, country string) string {
	cycle := strings.TrimPrefix(cycleID, "cycle-")
	return fmt.Sprintf("REF-%s-%s-%s",
		cycle,
		strings.ToUpper(prefix(supplier, 3)),
		strings.ToUpper(prefix(country, 2)),
	)
}

func prefix(value string, n int) string {
	runes := []rune(value)
	if len(runes) <= n {
		return value
	}
	return string(runes[:n])
}
