package draftpo

import "github.com/angelmondragon/procureflow-backend/pkg/models"

const (
	LegalEntityWestAfrica = "le-wa"
	LegalEntityEastAfrica = "le-ea"
	LegalEntityPBC        = "le-pbc"
)

var countryLegalEntities = map[string]string{
	"Ghana":   LegalEntityWestAfrica,
	"Nigeria": LegalEntityWestAfrica,
	"Kenya":   LegalEntityEastAfrica,
}

// used when the directory does not carry the resolved entity
var builtinLegalEntities = map[string]models.LegalEntity{
	LegalEntityWestAfrica: {
		ID:           LegalEntityWestAfrica,
		Name:         "Axmed West Africa Ltd",
		Abbreviation: "WA",
		Address:      "12 Independence Avenue, Accra, Ghana",
	},
	LegalEntityEastAfrica: {
		ID:           LegalEntityEastAfrica,
		Name:         "Axmed East Africa Ltd",
		Abbreviation: "EA",
		Address:      "45 Kenyatta Avenue, Nairobi, Kenya",
	},
	LegalEntityPBC: {
		ID:           LegalEntityPBC,
		Name:         "Axmed PBC",
		Abbreviation: "PBC",
		Address:      "100 Market Street, Suite 300, San Francisco, CA 94105, USA",
	},
}

// LegalEntityIDForCountry maps a ship-to country onto the contracting entity.
// Matching is exact; anything outside the table falls back to PBC.
func LegalEntityIDForCountry(country string) string {
	if id, ok := countryLegalEntities[country]; ok {
		return id
	}
	return LegalEntityPBC
}

// ResolveLegalEntity returns the entity for country, preferring the directory record.
func ResolveLegalEntity(dir Directory, country string) models.LegalEntity {
	id := LegalEntityIDForCountry(country)
	if dir != nil {
		if entity, ok := dir.LegalEntity(id); ok {
			return entity
		}
	}
	return builtinLegalEntities[id]
}
