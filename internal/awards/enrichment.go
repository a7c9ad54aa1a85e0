package awards

import (
	"regexp"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/angelmondragon/procureflow-backend/pkg/validation"
)

var (
	unNumberRe = regexp.MustCompile(`^UN\d{4}$`)
	imoClassRe = regexp.MustCompile(`^[1-9](\.[1-6])?$`)
)

// EnrichmentInput is the technical enrichment step as entered by the supplier.
type EnrichmentInput struct {
	CartonLengthCm     float64 `json:"carton_length_cm" validate:"gt=0"`
	CartonWidthCm      float64 `json:"carton_width_cm" validate:"gt=0"`
	CartonHeightCm     float64 `json:"carton_height_cm" validate:"gt=0"`
	CartonWeightKg     float64 `json:"carton_weight_kg" validate:"gt=0"`
	PacksPerCarton     int64   `json:"packs_per_carton" validate:"gt=0"`
	StorageType        string  `json:"storage_type" validate:"required"`
	Stackable          bool    `json:"stackable"`
	MaxStackHeight     int     `json:"max_stack_height,omitempty" validate:"required_if=Stackable true,gte=0"`
	MaxLoadKg          float64 `json:"max_load_kg,omitempty" validate:"required_if=Stackable true,gte=0"`
	DangerousGoods     bool    `json:"dangerous_goods"`
	IMOClass           string  `json:"imo_class,omitempty" validate:"required_if=DangerousGoods true"`
	UNNumber           string  `json:"un_number,omitempty" validate:"required_if=DangerousGoods true"`
	ProperShippingName string  `json:"proper_shipping_name,omitempty" validate:"required_if=DangerousGoods true,max=200"`
	PackingGroup       string  `json:"packing_group,omitempty" validate:"required_if=DangerousGoods true"`
	MarinePollutant    *bool   `json:"marine_pollutant,omitempty" validate:"required_if=DangerousGoods true"`
	ShelfLifeMonths    int     `json:"shelf_life_months,omitempty" validate:"omitempty,min=1,max=120"`
	BatchNumber        string  `json:"batch_number,omitempty" validate:"omitempty,max=64"`
}

// Build validates the input and assembles the enrichment for confirmedQty units.
// Stackability and dangerous goods details are dropped when their flag is off.
func (in EnrichmentInput) Build(confirmedQty int64) (models.TechnicalEnrichment, error) {
	fields := validation.Fields{}
	if err := fields.Merge(validation.Struct(in)); err != nil {
		return models.TechnicalEnrichment{}, err
	}

	storage, err := enums.ParseStorageType(in.StorageType)
	if in.StorageType != "" && err != nil {
		fields.Add("storage_type", "is not a supported storage type")
	}

	out := models.TechnicalEnrichment{
		CartonLengthCm:  in.CartonLengthCm,
		CartonWidthCm:   in.CartonWidthCm,
		CartonHeightCm:  in.CartonHeightCm,
		CartonWeightKg:  in.CartonWeightKg,
		PacksPerCarton:  in.PacksPerCarton,
		NumberOfCartons: CartonCount(confirmedQty, in.PacksPerCarton),
		StorageType:     storage,
		Stackable:       in.Stackable,
		DangerousGoods:  in.DangerousGoods,
		ShelfLifeMonths: in.ShelfLifeMonths,
		BatchNumber:     in.BatchNumber,
	}

	if in.Stackable {
		out.MaxStackHeight = in.MaxStackHeight
		out.MaxLoadKg = in.MaxLoadKg
	}

	if in.DangerousGoods {
		if in.IMOClass != "" && !imoClassRe.MatchString(in.IMOClass) {
			fields.Add("imo_class", "must be a class 1-9 with an optional division")
		}
		if in.UNNumber != "" && !unNumberRe.MatchString(in.UNNumber) {
			fields.Add("un_number", "must match UN followed by 4 digits")
		}
		group, err := enums.ParsePackingGroup(in.PackingGroup)
		if in.PackingGroup != "" && err != nil {
			fields.Add("packing_group", "must be one of I, II, III")
		}
		out.IMOClass = in.IMOClass
		out.UNNumber = in.UNNumber
		out.ProperShippingName = in.ProperShippingName
		out.PackingGroup = group
		if in.MarinePollutant != nil {
			marine := *in.MarinePollutant
			out.MarinePollutant = &marine
		}
	}

	if err := fields.Err("technical enrichment is incomplete"); err != nil {
		return models.TechnicalEnrichment{}, err
	}
	return out, nil
}

// CartonCount is ceil(qty / packsPerCarton), or zero when either side is not positive.
func CartonCount(qty, packsPerCarton int64) int64 {
	if qty <= 0 || packsPerCarton <= 0 {
		return 0
	}
	return (qty + packsPerCarton - 1) / packsPerCarton
}
