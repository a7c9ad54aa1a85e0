package models

import (
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// SupplierAward is a supplier's awarded allocation of one SKU across ship-to locations.
type SupplierAward struct {
	ID                   string                 `json:"id"`
	SKUName              string                 `json:"sku_name"`
	Description          string                 `json:"description"`
	TotalQuantity        int64                  `json:"total_quantity"`
	UnitPrice            decimal.Decimal        `json:"unit_price"`
	Currency             enums.Currency         `json:"currency"`
	Status               enums.AwardStatus      `json:"status"`
	PlannedShipments     []PlannedShipment      `json:"planned_shipments"`
	TechnicalEnrichment  *TechnicalEnrichment   `json:"technical_enrichment,omitempty"`
	ConfirmedQuantity    *int64                 `json:"confirmed_quantity,omitempty"`
	ConfirmationType     enums.ConfirmationType `json:"confirmation_type,omitempty"`
	ConfirmedAllocations []ConfirmedAllocation  `json:"confirmed_allocations,omitempty"`
	DecidedAt            *time.Time             `json:"decided_at,omitempty"`
}

type PlannedShipment struct {
	PONumber      string  `json:"po_number"`
	Location      string  `json:"location"`
	Quantity      int64   `json:"quantity"`
	TotalQuantity int64   `json:"total_quantity"`
	Percentage    float64 `json:"percentage"`
}

// ConfirmedAllocation is the integer quantity assigned to one planned shipment.
type ConfirmedAllocation struct {
	PONumber          string  `json:"po_number"`
	Location          string  `json:"location"`
	Percentage        float64 `json:"percentage"`
	AllocatedQuantity int64   `json:"allocated_quantity"`
}

// TechnicalEnrichment holds packaging, storage and dangerous goods data captured at confirmation.
type TechnicalEnrichment struct {
	CartonLengthCm     float64            `json:"carton_length_cm"`
	CartonWidthCm      float64            `json:"carton_width_cm"`
	CartonHeightCm     float64            `json:"carton_height_cm"`
	CartonWeightKg     float64            `json:"carton_weight_kg"`
	PacksPerCarton     int64              `json:"packs_per_carton"`
	NumberOfCartons    int64              `json:"number_of_cartons"`
	StorageType        enums.StorageType  `json:"storage_type"`
	Stackable          bool               `json:"stackable"`
	MaxStackHeight     int                `json:"max_stack_height,omitempty"`
	MaxLoadKg          float64            `json:"max_load_kg,omitempty"`
	DangerousGoods     bool               `json:"dangerous_goods"`
	IMOClass           string             `json:"imo_class,omitempty"`
	UNNumber           string             `json:"un_number,omitempty"`
	ProperShippingName string             `json:"proper_shipping_name,omitempty"`
	PackingGroup       enums.PackingGroup `json:"packing_group,omitempty"`
	MarinePollutant    *bool              `json:"marine_pollutant,omitempty"`
	ShelfLifeMonths    int                `json:"shelf_life_months,omitempty"`
	BatchNumber        string             `json:"batch_number,omitempty"`
}

// Clone returns a deep copy that shares no slices or pointers with a.
func (a SupplierAward) Clone() SupplierAward {
	out := a
	if a.PlannedShipments != nil {
		out.PlannedShipments = append([]PlannedShipment(nil), a.PlannedShipments...)
	}
	if a.ConfirmedAllocations != nil {
		out.ConfirmedAllocations = append([]ConfirmedAllocation(nil), a.ConfirmedAllocations...)
	}
	if a.TechnicalEnrichment != nil {
		enrichment := a.TechnicalEnrichment.Clone()
		out.TechnicalEnrichment = &enrichment
	}
	if a.ConfirmedQuantity != nil {
		qty := *a.ConfirmedQuantity
		out.ConfirmedQuantity = &qty
	}
	if a.DecidedAt != nil {
		at := *a.DecidedAt
		out.DecidedAt = &at
	}
	return out
}

func (t TechnicalEnrichment) Clone() TechnicalEnrichment {
	out := t
	if t.MarinePollutant != nil {
		v := *t.MarinePollutant
		out.MarinePollutant = &v
	}
	return out
}
