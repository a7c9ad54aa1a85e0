package purchaseorders

import (
	"context"
	"fmt"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// AwardOutcome is a supplier decision on one award, addressed to the POs its
// planned shipments reference.
type AwardOutcome struct {
	AwardID     string
	SKU         string
	Status      enums.AwardStatus
	Allocations []models.ConfirmedAllocation
}

// OutcomeResult reports which POs took the outcome and which shipments matched nothing.
type OutcomeResult struct {
	UpdatedPOs []string
	Unmatched  []string
}

// RecordAwardOutcome writes the award decision onto matching PO lines: the line
// whose product equals the award SKU on each shipment's PO number. A submitted PO
// whose lines are all resolved afterwards becomes confirmed when every line was
// confirmed, and partially_confirmed otherwise. Allocations naming the same PO
// add up on its line. All changes commit together.
func (s *Store) RecordAwardOutcome(ctx context.Context, outcome AwardOutcome) (OutcomeResult, error) {
	if !outcome.Status.IsTerminal() {
		return OutcomeResult{}, pkgerrors.Validation("award outcome must be terminal", map[string]string{
			"status": fmt.Sprintf("%q is not a final award status", outcome.Status),
		})
	}
	lineStatus := enums.LineItemStatusForAward(outcome.Status)

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := map[int]models.PurchaseOrder{}
	touched := map[int]map[int]bool{}
	var result OutcomeResult
	for _, alloc := range outcome.Allocations {
		idx := s.purchaseOrderNumberIndex(alloc.PONumber)
		if idx < 0 {
			result.Unmatched = append(result.Unmatched, alloc.PONumber)
			s.metrics.IncLineOutcome("unmatched")
			continue
		}
		po, ok := staged[idx]
		if !ok {
			po = s.purchaseOrders[idx].Clone()
			touched[idx] = map[int]bool{}
		}
		line := lineForProduct(po.LineItems, outcome.SKU)
		if line < 0 {
			result.Unmatched = append(result.Unmatched, alloc.PONumber)
			s.metrics.IncLineOutcome("unmatched")
			continue
		}
		qty := alloc.AllocatedQuantity
		if touched[idx][line] {
			qty += *po.LineItems[line].ConfirmedQuantity
		}
		touched[idx][line] = true
		po.LineItems[line].Status = lineStatus
		po.LineItems[line].ConfirmedQuantity = &qty
		staged[idx] = po
		s.metrics.IncLineOutcome("matched")
	}

	// Settle targets are decided before any PO is written.
	settle := map[int]enums.PurchaseOrderStatus{}
	for idx, po := range staged {
		if po.Status != enums.PurchaseOrderStatusSubmitted {
			continue
		}
		if next, settled := settledStatus(po.LineItems); settled {
			if !CanTransition(po.Status, next) {
				return OutcomeResult{}, pkgerrors.StateConflict(
					fmt.Sprintf("cannot move purchase order from %s to %s", po.Status, next),
					map[string]any{"po_id": po.ID, "from": po.Status, "to": next},
				)
			}
			settle[idx] = next
		}
	}

	now := s.now()
	for idx := 0; idx < len(s.purchaseOrders); idx++ {
		po, ok := staged[idx]
		if !ok {
			continue
		}
		po.UpdatedAt = now
		s.purchaseOrders[idx] = po
		result.UpdatedPOs = append(result.UpdatedPOs, po.ID)
		if next, ok := settle[idx]; ok {
			s.setStatusLocked(ctx, idx, next)
		}
	}

	logCtx := s.logg.WithAwardID(ctx, outcome.AwardID)
	logCtx = s.logg.WithFields(logCtx, map[string]any{
		"status":      outcome.Status,
		"updated_pos": result.UpdatedPOs,
		"unmatched":   result.Unmatched,
	})
	s.logg.Info(logCtx, "po.award_outcome_recorded")
	return result, nil
}

// settledStatus decides the final PO status once no line is waiting on the supplier.
func settledStatus(lines []models.POLineItem) (enums.PurchaseOrderStatus, bool) {
	if len(lines) == 0 {
		return "", false
	}
	allConfirmed := true
	for _, line := range lines {
		if !line.Status.IsResolved() {
			return "", false
		}
		if line.Status != enums.LineItemStatusConfirmed {
			allConfirmed = false
		}
	}
	if allConfirmed {
		return enums.PurchaseOrderStatusConfirmed, true
	}
	return enums.PurchaseOrderStatusPartiallyConfirmed, true
}

func lineForProduct(lines []models.POLineItem, product string) int {
	for i := range lines {
		if lines[i].Product == product {
			return i
		}
	}
	return -1
}

func (s *Store) purchaseOrderNumberIndex(number string) int {
	if number == "" {
		return -1
	}
	for i := range s.purchaseOrders {
		if s.purchaseOrders[i].PONumber == number {
			return i
		}
	}
	return -1
}
