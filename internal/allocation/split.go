// Package allocation apportions a confirmed award quantity across planned shipments.
package allocation

import (
	"math"
	"sort"
	"strconv"

	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Split is the quantity assigned to one planned shipment.
type Split struct {
	PONumber     string  `json:"po_number"`
	Location     string  `json:"location"`
	OriginalQty  int64   `json:"original_qty"`
	Percentage   float64 `json:"percentage"`
	AllocatedQty int64   `json:"allocated_qty"`
}

type share struct {
	index     int
	floor     int64
	remainder decimal.Decimal
}

// ComputeProportionalSplit distributes totalQty over shipments by the largest
// remainder method. The allocated quantities always sum to totalQty and each one
// is the floor of its exact share or one more.
//
// Percentages are weighted by their actual sum so data that does not add up to
// 100 still apportions the whole quantity. Shares are computed as exact
// quotient/remainder pairs over the common denominator, so no float rounding
// can move a unit between shipments.
func ComputeProportionalSplit(shipments []models.PlannedShipment, totalQty int64) ([]Split, error) {
	if totalQty < 0 {
		return nil, pkgerrors.Validation("quantity must not be negative", map[string]string{
			"quantity": "must be at least 0",
		})
	}
	if len(shipments) == 0 {
		if totalQty == 0 {
			return []Split{}, nil
		}
		return nil, pkgerrors.Validation("award has no planned shipments", map[string]string{
			"planned_shipments": "at least one shipment is required",
		})
	}

	weights := make([]decimal.Decimal, len(shipments))
	sum := decimal.Zero
	fields := map[string]string{}
	for i, shipment := range shipments {
		pct := shipment.Percentage
		if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 {
			fields["planned_shipments["+strconv.Itoa(i)+"].percentage"] = "must be a non-negative number"
			continue
		}
		weights[i] = decimal.NewFromFloat(pct)
		sum = sum.Add(weights[i])
	}
	if len(fields) > 0 {
		return nil, pkgerrors.Validation("invalid shipment percentages", fields)
	}
	if !sum.IsPositive() {
		return nil, pkgerrors.Validation("shipment percentages must sum to a positive value", map[string]string{
			"planned_shipments": "percentages sum to zero",
		})
	}

	total := decimal.NewFromInt(totalQty)
	shares := make([]share, len(shipments))
	var floored int64
	for i, weight := range weights {
		q, r := total.Mul(weight).QuoRem(sum, 0)
		shares[i] = share{index: i, floor: q.IntPart(), remainder: r}
		floored += shares[i].floor
	}

	remaining := totalQty - floored
	order := make([]share, len(shares))
	copy(order, shares)
	sort.SliceStable(order, func(a, b int) bool {
		return order[a].remainder.GreaterThan(order[b].remainder)
	})

	bonus := make([]int64, len(shipments))
	for i := 0; i < len(order) && remaining > 0; i++ {
		bonus[order[i].index] = 1
		remaining--
	}

	splits := make([]Split, len(shipments))
	for i, shipment := range shipments {
		splits[i] = Split{
			PONumber:     shipment.PONumber,
			Location:     shipment.Location,
			OriginalQty:  shipment.Quantity,
			Percentage:   shipment.Percentage,
			AllocatedQty: shares[i].floor + bonus[i],
		}
	}
	return splits, nil
}

// ToConfirmedAllocations converts splits into the form stored on an award.
func ToConfirmedAllocations(splits []Split) []models.ConfirmedAllocation {
	out := make([]models.ConfirmedAllocation, 0, len(splits))
	for _, split := range splits {
		out = append(out, models.ConfirmedAllocation{
			PONumber:          split.PONumber,
			Location:          split.Location,
			Percentage:        split.Percentage,
			AllocatedQuantity: split.AllocatedQty,
		})
	}
	return out
}

// Total sums the allocated quantities.
func Total(splits []Split) int64 {
	var sum int64
	for _, split := range splits {
		sum += split.AllocatedQty
	}
	return sum
}
