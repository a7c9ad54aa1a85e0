package purchaseorders

import (
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/shopspring/decimal"
)

// CycleOption is one procurement cycle present in the order items.
type CycleOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CycleOptions lists distinct cycles in first-seen order with their item counts.
func CycleOptions(items []models.OrderItem) []CycleOption {
	index := map[string]int{}
	out := []CycleOption{}
	for _, item := range items {
		pos, ok := index[item.CycleID]
		if !ok {
			pos = len(out)
			index[item.CycleID] = pos
			out = append(out, CycleOption{ID: item.CycleID, Name: item.CycleName})
		}
		out[pos].Count++
	}
	return out
}

// OrderItemFilter narrows an order item listing. Zero values match everything.
type OrderItemFilter struct {
	Status  enums.OrderItemStatus
	CycleID string
}

func FilterOrderItems(items []models.OrderItem, filter OrderItemFilter) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.CycleID != "" && item.CycleID != filter.CycleID {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SelectableItems returns the items eligible for draft PO creation.
func SelectableItems(items []models.OrderItem) []models.OrderItem {
	return FilterOrderItems(items, OrderItemFilter{Status: enums.OrderItemStatusPOSubmitted})
}

// StatusSummary counts purchase orders per status. Every status is present.
type StatusSummary struct {
	All      int                               `json:"all"`
	ByStatus map[enums.PurchaseOrderStatus]int `json:"by_status"`
}

func CountByStatus(pos []models.PurchaseOrder) StatusSummary {
	summary := StatusSummary{ByStatus: map[enums.PurchaseOrderStatus]int{}}
	for _, status := range enums.PurchaseOrderStatuses() {
		summary.ByStatus[status] = 0
	}
	for _, po := range pos {
		summary.All++
		summary.ByStatus[po.Status]++
	}
	return summary
}

// FilterPurchaseOrders keeps the POs whose status matches. An empty status matches all.
func FilterPurchaseOrders(pos []models.PurchaseOrder, status enums.PurchaseOrderStatus) []models.PurchaseOrder {
	out := make([]models.PurchaseOrder, 0, len(pos))
	for _, po := range pos {
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, po)
	}
	return out
}

// ConfirmedSubtotal values the confirmed quantities of lines the supplier accepted.
func ConfirmedSubtotal(po models.PurchaseOrder) decimal.Decimal {
	total := decimal.Zero
	for _, line := range po.LineItems {
		if line.ConfirmedQuantity == nil {
			continue
		}
		if line.Status != enums.LineItemStatusConfirmed && line.Status != enums.LineItemStatusPartiallyConfirmed {
			continue
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(*line.ConfirmedQuantity)))
	}
	return total
}

// FulfillmentPO is a supplier-answered PO as the fulfillment view lists it.
type FulfillmentPO struct {
	ID                string                    `json:"id"`
	PONumber          string                    `json:"po_number"`
	Supplier          string                    `json:"supplier"`
	Status            enums.PurchaseOrderStatus `json:"status"`
	ConfirmedSubtotal decimal.Decimal           `json:"confirmed_subtotal"`
	Currency          enums.Currency            `json:"currency"`
	ConfirmedAt       time.Time                 `json:"confirmed_at"`
}

// FulfillmentLocation groups fulfillment POs by ship-to city and country.
type FulfillmentLocation struct {
	City           string          `json:"city"`
	Country        string          `json:"country"`
	PurchaseOrders []FulfillmentPO `json:"purchase_orders"`
}

// FulfillmentByLocation groups confirmed and partially_confirmed POs by
// destination in first-seen order, newest first within each location. A
// non-empty search keeps POs whose number contains it, ignoring case.
func FulfillmentByLocation(pos []models.PurchaseOrder, search string) []FulfillmentLocation {
	term := strings.ToLower(strings.TrimSpace(search))
	index := map[string]int{}
	out := []FulfillmentLocation{}
	for _, po := range pos {
		if po.Status != enums.PurchaseOrderStatusConfirmed && po.Status != enums.PurchaseOrderStatusPartiallyConfirmed {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(po.PONumber), term) {
			continue
		}
		key := po.ShipToCity + "|" + po.ShipToCountry
		at, ok := index[key]
		if !ok {
			at = len(out)
			index[key] = at
			out = append(out, FulfillmentLocation{City: po.ShipToCity, Country: po.ShipToCountry})
		}
		out[at].PurchaseOrders = append(out[at].PurchaseOrders, FulfillmentPO{
			ID:                po.ID,
			PONumber:          po.PONumber,
			Supplier:          po.Supplier,
			Status:            po.Status,
			ConfirmedSubtotal: ConfirmedSubtotal(po),
			Currency:          po.Currency,
			ConfirmedAt:       po.UpdatedAt,
		})
	}
	for i := range out {
		list := out[i].PurchaseOrders
		sort.SliceStable(list, func(a, b int) bool { return list[a].ConfirmedAt.After(list[b].ConfirmedAt) })
	}
	return out
}
