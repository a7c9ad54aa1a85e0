package draftpo

import (
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	suppliers map[string]models.SupplierOrg
	entities  map[string]models.LegalEntity
}

func (s stubDirectory) SupplierOrg(id string) (models.SupplierOrg, bool) {
	org, ok := s.suppliers[id]
	return org, ok
}

func (s stubDirectory) LegalEntity(id string) (models.LegalEntity, bool) {
	entity, ok := s.entities[id]
	return entity, ok
}

func newDirectory() stubDirectory {
	return stubDirectory{
		suppliers: map[string]models.SupplierOrg{
			"sup-cipla": {
				ID:      "sup-cipla",
				Name:    "Cipla Ltd",
				Address: "Cipla House, Peninsula Business Park",
				City:    "Mumbai",
				Country: "India",
				Contacts: []models.SupplierContact{
					{Name: "Rajesh Kumar", Email: "rajesh.kumar@cipla.com"},
					{Name: "Second Contact", Email: "second@cipla.com"},
				},
			},
		},
		entities: map[string]models.LegalEntity{},
	}
}

func orderItem(id string, qty int64, price string, country string) models.OrderItem {
	return models.OrderItem{
		ID:               id,
		BuyerName:        "Ghana Health Service",
		ProductName:      "Product " + id,
		Description:      "desc " + id,
		Quantity:         qty,
		UnitPrice:        decimal.RequireFromString(price),
		PackSize:         10,
		PackPrice:        decimal.RequireFromString(price).Mul(decimal.NewFromInt(10)),
		Currency:         enums.CurrencyUSD,
		Status:           enums.OrderItemStatusPOSubmitted,
		SelectedSupplier: "Cipla Ltd",
		SupplierOrgID:    "sup-cipla",
		Incoterm:         "FCA",
		IncotermLocation: "Mumbai",
		ShipToCity:       "Accra",
		ShipToCountry:    country,
		ShipToAddress:    "Tema Port Free Zone",
		CycleName:        "Cycle 253",
		CycleID:          "cycle-253",
	}
}

func TestGroupOrderItems_SameKeyMerges(t *testing.T) {
	items := []models.OrderItem{
		orderItem("oi-1", 100, "2", "Ghana"),
		orderItem("oi-2", 50, "4", "Ghana"),
	}

	groups := GroupOrderItems(items)

	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].SKUCount)
	assert.True(t, groups[0].TotalValue.Equal(decimal.NewFromInt(400)), groups[0].TotalValue.String())
	assert.Equal(t, []string{"oi-1", "oi-2"}, groups[0].ItemIDs())
}

func TestGroupOrderItems_DifferentCountrySplits(t *testing.T) {
	items := []models.OrderItem{
		orderItem("oi-1", 100, "2", "Ghana"),
		orderItem("oi-2", 50, "4", "Nigeria"),
	}

	groups := GroupOrderItems(items)

	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.Equal(t, 1, g.SKUCount)
	}
	assert.Equal(t, "Ghana", groups[0].ShipToCountry)
	assert.Equal(t, "Nigeria", groups[1].ShipToCountry)
}

func TestGroupOrderItems_FirstSeenOrderAndPartition(t *testing.T) {
	a1 := orderItem("a1", 1, "1", "Kenya")
	b1 := orderItem("b1", 1, "1", "Ghana")
	a2 := orderItem("a2", 1, "1", "Kenya")
	c1 := orderItem("c1", 1, "1", "Ghana")
	c1.Incoterm = "CIF"
	b2 := orderItem("b2", 1, "1", "Ghana")
	input := []models.OrderItem{a1, b1, a2, c1, b2}

	groups := GroupOrderItems(input)

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"a1", "a2"}, groups[0].ItemIDs())
	assert.Equal(t, []string{"b1", "b2"}, groups[1].ItemIDs())
	assert.Equal(t, []string{"c1"}, groups[2].ItemIDs())

	seen := map[string]int{}
	for _, g := range groups {
		for _, id := range g.ItemIDs() {
			seen[id]++
		}
	}
	require.Len(t, seen, len(input))
	for id, count := range seen {
		assert.Equalf(t, 1, count, "item %s", id)
	}

	assert.Equal(t, groups, GroupOrderItems(input), "grouping must be deterministic")
	assert.Equal(t, "a1", input[0].ID, "input must not be reordered")
}

func TestGroupOrderItems_Empty(t *testing.T) {
	assert.Empty(t, GroupOrderItems(nil))
}

func TestConvertGroup_PopulatesDraft(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	groups := GroupOrderItems([]models.OrderItem{
		orderItem("oi-1", 100, "2", "Ghana"),
		orderItem("oi-2", 50, "4", "Ghana"),
	})

	po := ConvertGroup(groups[0], 7, newDirectory(), now)

	assert.Equal(t, "po-draft-007", po.ID)
	assert.Equal(t, "DRAFT-007", po.PONumber)
	assert.Equal(t, enums.PurchaseOrderStatusDraft, po.Status)
	assert.Equal(t, now, po.CreatedAt)
	assert.Equal(t, now, po.UpdatedAt)
	assert.Equal(t, "2026-03-04", po.Date)
	assert.Equal(t, "Axmed West Africa Ltd", po.LegalEntity)
	assert.Equal(t, "WA", po.LegalEntityAbbrev)
	assert.Equal(t, "Axmed West Africa Ltd", po.BillToEntity)
	assert.Equal(t, "12 Independence Avenue, Accra, Ghana", po.BillToAddress)
	assert.Equal(t, "Cipla House, Peninsula Business Park, Mumbai, India", po.VendorAddress)
	assert.Equal(t, "Rajesh Kumar", po.VendorContact)
	assert.Equal(t, "rajesh.kumar@cipla.com", po.VendorEmail)
	assert.Equal(t, "Ghana Health Service", po.ShipToName)
	assert.Equal(t, "Tema Port Free Zone", po.ShipToAddress)
	assert.Equal(t, "Net 60 on Delivery", po.Terms)
	assert.Equal(t, "REF-253-CIP-GH", po.ReferenceNumber)
	assert.Equal(t, "FCA Mumbai", po.Incoterm)
	assert.True(t, po.VATPercent.IsZero())
	assert.Equal(t, []string{"oi-1", "oi-2"}, po.SourceOrderItemIDs)

	require.Len(t, po.LineItems, 2)
	assert.Equal(t, "li-po-draft-007-1", po.LineItems[0].ID)
	assert.Equal(t, "li-po-draft-007-2", po.LineItems[1].ID)
	assert.True(t, po.LineItems[0].Amount.Equal(decimal.NewFromInt(200)))
	assert.True(t, po.TotalAmount.Equal(groups[0].TotalValue))
	assert.True(t, po.LineItemsTotal().Equal(groups[0].TotalValue))
}

func TestConvertGroup_UnknownSupplier(t *testing.T) {
	item := orderItem("oi-1", 1, "1", "Ghana")
	item.SupplierOrgID = "sup-missing"
	po := ConvertGroup(GroupOrderItems([]models.OrderItem{item})[0], 1, newDirectory(), time.Now())

	assert.Equal(t, "N/A", po.VendorAddress)
	assert.Empty(t, po.VendorContact)
	assert.Empty(t, po.VendorEmail)
}

func TestConvertGroup_CounterPadding(t *testing.T) {
	po := ConvertGroup(GroupOrderItems([]models.OrderItem{orderItem("oi-1", 1, "1", "Ghana")})[0], 1234, nil, time.Now())
	assert.Equal(t, "po-draft-1234", po.ID)
	assert.Equal(t, "DRAFT-1234", po.PONumber)
}

func TestConversionTotalInvariant(t *testing.T) {
	for n := 1; n <= 20; n++ {
		var items []models.OrderItem
		for i := 0; i < n; i++ {
			items = append(items, orderItem(fmt.Sprintf("oi-%d", i), int64(i*137+1), fmt.Sprintf("0.%03d", i*7+1), "Kenya"))
		}
		group := GroupOrderItems(items)[0]
		po := ConvertGroup(group, n, nil, time.Now())
		assert.True(t, po.LineItemsTotal().Equal(group.TotalValue), "n=%d", n)
	}
}

func TestLegalEntityIDForCountry(t *testing.T) {
	cases := map[string]string{
		"Ghana":        LegalEntityWestAfrica,
		"Nigeria":      LegalEntityWestAfrica,
		"Kenya":        LegalEntityEastAfrica,
		"Switzerland":  LegalEntityPBC,
		"ghana":        LegalEntityPBC,
		"":             LegalEntityPBC,
		"South Africa": LegalEntityPBC,
	}
	for country, want := range cases {
		assert.Equalf(t, want, LegalEntityIDForCountry(country), "country %q", country)
	}
}

func TestResolveLegalEntityPrefersDirectory(t *testing.T) {
	dir := newDirectory()
	dir.entities[LegalEntityEastAfrica] = models.LegalEntity{ID: LegalEntityEastAfrica, Name: "Override", Abbreviation: "EA"}

	assert.Equal(t, "Override", ResolveLegalEntity(dir, "Kenya").Name)
	assert.Equal(t, "Axmed PBC", ResolveLegalEntity(dir, "India").Name)
	assert.Equal(t, "Axmed PBC", ResolveLegalEntity(nil, "India").Name)
}

func TestReferenceNumber(t *testing.T) {
	assert.Equal(t, "REF-253-NOV-NI", ReferenceNumber("cycle-253", "Novartis AG", "Nigeria"))
	assert.Equal(t, "REF-252-SU-K", ReferenceNumber("cycle-252", "Su", "K"))
	assert.Equal(t, "REF-custom-AUR-KE", ReferenceNumber("custom", "aurobindo", "kenya"))
}
