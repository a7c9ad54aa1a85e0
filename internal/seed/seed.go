// Package seed provides the fixed procurement dataset the stores start from.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

//go:embed seed.json
var embedded []byte

// Dataset is the initial, read-only collection of every entity.
type Dataset struct {
	LegalEntities         []models.LegalEntity   `json:"legal_entities"`
	SupplierOrganizations []models.SupplierOrg   `json:"supplier_organizations"`
	PaymentTerms          []string               `json:"payment_terms"`
	OrderItems            []models.OrderItem     `json:"order_items"`
	PurchaseOrders        []models.PurchaseOrder `json:"purchase_orders"`
	SupplierAwards        []models.SupplierAward `json:"supplier_awards"`
}

// Load decodes the embedded dataset. Each call returns an independent copy.
func Load() (*Dataset, error) {
	return Parse(embedded)
}

// Parse decodes and sanity-checks a dataset document.
func Parse(data []byte) (*Dataset, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var ds Dataset
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode seed dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (d *Dataset) validate() error {
	seen := map[string]struct{}{}
	unique := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("seed %s with empty id", kind)
		}
		key := kind + ":" + id
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate seed %s %q", kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}

	for _, item := range d.OrderItems {
		if err := unique("order item", item.ID); err != nil {
			return err
		}
		if !item.Status.IsValid() {
			return fmt.Errorf("order item %s: invalid status %q", item.ID, item.Status)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("order item %s: quantity must be positive", item.ID)
		}
	}
	for _, po := range d.PurchaseOrders {
		if err := unique("purchase order", po.ID); err != nil {
			return err
		}
		if !po.Status.IsValid() {
			return fmt.Errorf("purchase order %s: invalid status %q", po.ID, po.Status)
		}
	}
	for _, award := range d.SupplierAwards {
		if err := unique("award", award.ID); err != nil {
			return err
		}
		if !award.Status.IsValid() {
			return fmt.Errorf("award %s: invalid status %q", award.ID, award.Status)
		}
	}
	for _, org := range d.SupplierOrganizations {
		if err := unique("supplier", org.ID); err != nil {
			return err
		}
	}
	for _, entity := range d.LegalEntities {
		if err := unique("legal entity", entity.ID); err != nil {
			return err
		}
	}
	return nil
}

// Directory indexes the supplier and legal entity reference data.
type Directory struct {
	suppliers map[string]models.SupplierOrg
	entities  map[string]models.LegalEntity
}

func (d *Dataset) Directory() *Directory {
	dir := &Directory{
		suppliers: make(map[string]models.SupplierOrg, len(d.SupplierOrganizations)),
		entities:  make(map[string]models.LegalEntity, len(d.LegalEntities)),
	}
	for _, org := range d.SupplierOrganizations {
		dir.suppliers[org.ID] = org
	}
	for _, entity := range d.LegalEntities {
		dir.entities[entity.ID] = entity
	}
	return dir
}

func (d *Directory) SupplierOrg(id string) (models.SupplierOrg, bool) {
	org, ok := d.suppliers[id]
	return org, ok
}

func (d *Directory) LegalEntity(id string) (models.LegalEntity, bool) {
	entity, ok := d.entities[id]
	return entity, ok
}
