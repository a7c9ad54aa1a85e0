package awards

import (
	"testing"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnrichment() EnrichmentInput {
	return EnrichmentInput{
		CartonLengthCm: 40,
		CartonWidthCm:  30,
		CartonHeightCm: 25,
		CartonWeightKg: 12.5,
		PacksPerCarton: 100,
		StorageType:    string(enums.StorageTypeAmbient),
	}
}

func dangerousEnrichment() EnrichmentInput {
	marine := true
	in := validEnrichment()
	in.DangerousGoods = true
	in.IMOClass = "6.1"
	in.UNNumber = "UN2811"
	in.ProperShippingName = "Toxic solid, organic, n.o.s."
	in.PackingGroup = "III"
	in.MarinePollutant = &marine
	return in
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	fields, ok := typed.Details().(map[string]string)
	require.True(t, ok, "details should be a field map")
	return fields
}

func TestBuildEnrichmentDerivesCartons(t *testing.T) {
	t.Parallel()

	out, err := validEnrichment().Build(1050)
	require.NoError(t, err)
	assert.Equal(t, int64(11), out.NumberOfCartons)
	assert.Equal(t, enums.StorageTypeAmbient, out.StorageType)
	assert.False(t, out.DangerousGoods)
	assert.Empty(t, out.UNNumber)
}

func TestBuildEnrichmentDropsFieldsBehindUnsetFlags(t *testing.T) {
	t.Parallel()

	in := validEnrichment()
	in.MaxStackHeight = 4
	in.UNNumber = "UN1234"

	out, err := in.Build(100)
	require.NoError(t, err)
	assert.Zero(t, out.MaxStackHeight)
	assert.Empty(t, out.UNNumber)
}

func TestBuildEnrichmentDangerousGoods(t *testing.T) {
	t.Parallel()

	out, err := dangerousEnrichment().Build(100)
	require.NoError(t, err)
	assert.Equal(t, "6.1", out.IMOClass)
	assert.Equal(t, enums.PackingGroupIII, out.PackingGroup)
	require.NotNil(t, out.MarinePollutant)
	assert.True(t, *out.MarinePollutant)
}

func TestBuildEnrichmentRejectsIncompleteInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*EnrichmentInput)
		field  string
	}{
		{"missing carton length", func(in *EnrichmentInput) { in.CartonLengthCm = 0 }, "carton_length_cm"},
		{"missing packs per carton", func(in *EnrichmentInput) { in.PacksPerCarton = 0 }, "packs_per_carton"},
		{"missing storage type", func(in *EnrichmentInput) { in.StorageType = "" }, "storage_type"},
		{"unknown storage type", func(in *EnrichmentInput) { in.StorageType = "warm" }, "storage_type"},
		{"stackable without height", func(in *EnrichmentInput) { in.Stackable = true; in.MaxLoadKg = 200 }, "max_stack_height"},
		{"stackable without load", func(in *EnrichmentInput) { in.Stackable = true; in.MaxStackHeight = 3 }, "max_load_kg"},
		{"shelf life out of range", func(in *EnrichmentInput) { in.ShelfLifeMonths = 121 }, "shelf_life_months"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := validEnrichment()
			tc.mutate(&in)
			_, err := in.Build(100)
			require.Error(t, err)
			assert.Contains(t, validationFields(t, err), tc.field)
		})
	}
}

func TestBuildEnrichmentRejectsIncompleteDangerousGoods(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*EnrichmentInput)
		field  string
	}{
		{"missing imo class", func(in *EnrichmentInput) { in.IMOClass = "" }, "imo_class"},
		{"bad imo class", func(in *EnrichmentInput) { in.IMOClass = "10" }, "imo_class"},
		{"missing un number", func(in *EnrichmentInput) { in.UNNumber = "" }, "un_number"},
		{"bad un number", func(in *EnrichmentInput) { in.UNNumber = "2811" }, "un_number"},
		{"missing shipping name", func(in *EnrichmentInput) { in.ProperShippingName = "" }, "proper_shipping_name"},
		{"bad packing group", func(in *EnrichmentInput) { in.PackingGroup = "IV" }, "packing_group"},
		{"missing marine pollutant", func(in *EnrichmentInput) { in.MarinePollutant = nil }, "marine_pollutant"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := dangerousEnrichment()
			tc.mutate(&in)
			_, err := in.Build(100)
			require.Error(t, err)
			assert.Contains(t, validationFields(t, err), tc.field)
		})
	}
}

func TestCartonCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), CartonCount(0, 10))
	assert.Equal(t, int64(0), CartonCount(10, 0))
	assert.Equal(t, int64(1), CartonCount(10, 10))
	assert.Equal(t, int64(2), CartonCount(11, 10))
	assert.Equal(t, int64(15000), CartonCount(1500000, 100))
}
