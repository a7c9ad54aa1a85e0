// Package draftpo turns selected order items into draft purchase orders.
package draftpo

import (
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/shopspring/decimal"
)

// GroupKey is the composite key items must share to land on the same draft PO.
type GroupKey struct {
	SupplierOrgID    string
	Incoterm         string
	IncotermLocation string
	ShipToCity       string
	ShipToCountry    string
}

// KeyOf extracts the grouping key of an order item.
func KeyOf(item models.OrderItem) GroupKey {
	return GroupKey{
		SupplierOrgID:    item.SupplierOrgID,
		Incoterm:         item.Incoterm,
		IncotermLocation: item.IncotermLocation,
		ShipToCity:       item.ShipToCity,
		ShipToCountry:    item.ShipToCountry,
	}
}

// Group is a transient aggregate of order items bound for one draft PO.
type Group struct {
	SupplierName     string             `json:"supplier_name"`
	SupplierOrgID    string             `json:"supplier_org_id"`
	Incoterm         string             `json:"incoterm"`
	IncotermLocation string             `json:"incoterm_location"`
	ShipToCity       string             `json:"ship_to_city"`
	ShipToCountry    string             `json:"ship_to_country"`
	Items            []models.OrderItem `json:"items"`
	SKUCount         int                `json:"sku_count"`
	TotalValue       decimal.Decimal    `json:"total_value"`
}

func (g Group) Key() GroupKey {
	return GroupKey{
		SupplierOrgID:    g.SupplierOrgID,
		Incoterm:         g.Incoterm,
		IncotermLocation: g.IncotermLocation,
		ShipToCity:       g.ShipToCity,
		ShipToCountry:    g.ShipToCountry,
	}
}

// ItemIDs lists the member identifiers in group order.
func (g Group) ItemIDs() []string {
	ids := make([]string, 0, len(g.Items))
	for _, item := range g.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// GroupOrderItems partitions items by GroupKey. Groups keep the order in which
// their key was first seen and members keep their input order. The input is not modified.
func GroupOrderItems(items []models.OrderItem) []Group {
	if len(items) == 0 {
		return []Group{}
	}

	index := make(map[GroupKey]int)
	groups := make([]Group, 0)
	for _, item := range items {
		key := KeyOf(item)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{
				SupplierName:     item.SelectedSupplier,
				SupplierOrgID:    key.SupplierOrgID,
				Incoterm:         key.Incoterm,
				IncotermLocation: key.IncotermLocation,
				ShipToCity:       key.ShipToCity,
				ShipToCountry:    key.ShipToCountry,
				TotalValue:       decimal.Zero,
			})
		}
		g := &groups[pos]
		g.Items = append(g.Items, item)
		g.SKUCount++
		g.TotalValue = g.TotalValue.Add(item.LineTotal())
	}
	return groups
}
