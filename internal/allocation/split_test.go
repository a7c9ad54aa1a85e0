package allocation

import (
	"math"
	"math/rand"
	"testing"

	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shipments(pcts ...float64) []models.PlannedShipment {
	out := make([]models.PlannedShipment, len(pcts))
	for i, pct := range pcts {
		out[i] = models.PlannedShipment{PONumber: "PO-" + string(rune('A'+i)), Location: "loc", Percentage: pct}
	}
	return out
}

func allocated(splits []Split) []int64 {
	out := make([]int64, len(splits))
	for i, s := range splits {
		out[i] = s.AllocatedQty
	}
	return out
}

func TestComputeProportionalSplit(t *testing.T) {
	cases := []struct {
		name  string
		pcts  []float64
		total int64
		want  []int64
	}{
		{name: "exact", pcts: []float64{40, 35, 25}, total: 100, want: []int64{40, 35, 25}},
		{name: "one unit remainder", pcts: []float64{40, 35, 25}, total: 101, want: []int64{41, 35, 25}},
		{name: "equal thirds break ties by input order", pcts: []float64{1, 1, 1}, total: 100, want: []int64{34, 33, 33}},
		{name: "zero quantity", pcts: []float64{60, 40}, total: 0, want: []int64{0, 0}},
		{name: "fractional percentages", pcts: []float64{62.5, 37.5}, total: 400000, want: []int64{250000, 150000}},
		{name: "partial award-004 style", pcts: []float64{50, 33, 17}, total: 250000, want: []int64{125000, 82500, 42500}},
		{name: "sum not 100 is normalised", pcts: []float64{30, 30}, total: 5, want: []int64{3, 2}},
		{name: "zero weight shipment", pcts: []float64{100, 0}, total: 7, want: []int64{7, 0}},
		{name: "single shipment", pcts: []float64{100}, total: 13, want: []int64{13}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			splits, err := ComputeProportionalSplit(shipments(tc.pcts...), tc.total)
			require.NoError(t, err)
			assert.Equal(t, tc.want, allocated(splits))
			assert.Equal(t, tc.total, Total(splits))
		})
	}
}

func TestComputeProportionalSplitCarriesShipmentFields(t *testing.T) {
	input := []models.PlannedShipment{{PONumber: "PO/WA/1", Location: "Accra, Ghana", Quantity: 600, Percentage: 60}, {PONumber: "PO/EA/2", Location: "Nairobi, Kenya", Quantity: 400, Percentage: 40}}
	splits, err := ComputeProportionalSplit(input, 10)
	require.NoError(t, err)

	assert.Equal(t, Split{PONumber: "PO/WA/1", Location: "Accra, Ghana", OriginalQty: 600, Percentage: 60, AllocatedQty: 6}, splits[0])

	allocs := ToConfirmedAllocations(splits)
	require.Len(t, allocs, 2)
	assert.Equal(t, models.ConfirmedAllocation{PONumber: "PO/EA/2", Location: "Nairobi, Kenya", Percentage: 40, AllocatedQuantity: 4}, allocs[1])
}

func TestComputeProportionalSplitRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		pcts  []float64
		total int64
	}{
		{name: "negative total", pcts: []float64{100}, total: -1},
		{name: "no shipments", pcts: nil, total: 5},
		{name: "negative percentage", pcts: []float64{120, -20}, total: 5},
		{name: "zero sum", pcts: []float64{0, 0}, total: 5},
		{name: "nan", pcts: []float64{math.NaN(), 50}, total: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeProportionalSplit(shipments(tc.pcts...), tc.total)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
		})
	}
}

func TestComputeProportionalSplitEmptyWithZero(t *testing.T) {
	splits, err := ComputeProportionalSplit(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, splits)
}

func TestComputeProportionalSplitExactnessProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(6) + 1
		raw := make([]float64, n)
		var rawSum float64
		for i := range raw {
			raw[i] = float64(rng.Intn(1000) + 1)
			rawSum += raw[i]
		}
		pcts := make([]float64, n)
		for i := range raw {
			pcts[i] = math.Round(raw[i]/rawSum*10000) / 100
		}
		total := rng.Int63n(5_000_000)

		splits, err := ComputeProportionalSplit(shipments(pcts...), total)
		require.NoError(t, err)
		require.Equal(t, total, Total(splits), "iteration %d", iter)

		var pctSum float64
		for _, p := range pcts {
			pctSum += p
		}
		for i, s := range splits {
			exact := float64(total) * pcts[i] / pctSum
			floor := math.Floor(exact)
			got := float64(s.AllocatedQty)
			assert.True(t, got >= floor-1e-6 && got <= floor+1+1e-6,
				"iteration %d shipment %d: got %v for exact %v", iter, i, got, exact)
		}
	}
}
