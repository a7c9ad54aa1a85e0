// Package purchaseorders owns order items and purchase orders and applies
// every mutation to them as one atomic step.
package purchaseorders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/procureflow-backend/internal/draftpo"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/metrics"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// Store is the authoritative PO lifecycle state. Readers always receive deep
// copies, so no caller observes a half-applied operation.
type Store struct {
	mu               sync.RWMutex
	orderItems       []models.OrderItem
	purchaseOrders   []models.PurchaseOrder
	nextDraftCounter int

	dir     draftpo.Directory
	now     func() time.Time
	logg    *logger.Logger
	metrics *metrics.ProcurementMetrics
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(s *Store) {
		if logg != nil {
			s.logg = logg
		}
	}
}

func WithMetrics(m *metrics.ProcurementMetrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore seeds the store. Seed POs in draft status are dropped: drafts only
// come into existence through CreateDraftPOs. The draft counter starts at 1.
func NewStore(dir draftpo.Directory, items []models.OrderItem, pos []models.PurchaseOrder, opts ...Option) (*Store, error) {
	if dir == nil {
		return nil, fmt.Errorf("supplier directory required")
	}
	s := &Store{
		orderItems:       append([]models.OrderItem(nil), items...),
		purchaseOrders:   make([]models.PurchaseOrder, 0, len(pos)),
		nextDraftCounter: 1,
		dir:              dir,
		now:              func() time.Time { return time.Now().UTC() },
		logg:             logger.Nop(),
	}
	for _, po := range pos {
		if po.Status == enums.PurchaseOrderStatusDraft {
			continue
		}
		s.purchaseOrders = append(s.purchaseOrders, po.Clone())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OrderItems returns a snapshot of every order item.
func (s *Store) OrderItems() []models.OrderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OrderItem(nil), s.orderItems...)
}

func (s *Store) OrderItem(id string) (models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.orderItemIndex(id)
	if idx < 0 {
		return models.OrderItem{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order item %s not found", id))
	}
	return s.orderItems[idx], nil
}

// PurchaseOrders returns a snapshot of every purchase order.
func (s *Store) PurchaseOrders() []models.PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PurchaseOrder, len(s.purchaseOrders))
	for i, po := range s.purchaseOrders {
		out[i] = po.Clone()
	}
	return out
}

func (s *Store) PurchaseOrder(id string) (models.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.purchaseOrderIndex(id)
	if idx < 0 {
		return models.PurchaseOrder{}, poNotFound(id)
	}
	return s.purchaseOrders[idx].Clone(), nil
}

// NextDraftCounter is the sequence number the next draft PO will receive.
func (s *Store) NextDraftCounter() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextDraftCounter
}

// PreviewSelection groups the selected items without changing anything.
func (s *Store) PreviewSelection(itemIDs []string) ([]draftpo.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, err := s.selectedItems(itemIDs)
	if err != nil {
		return nil, err
	}
	return draftpo.GroupOrderItems(items), nil
}

// CreateDraftPOsFromSelection groups the selected items against current state
// and creates one draft PO per group.
func (s *Store) CreateDraftPOsFromSelection(ctx context.Context, itemIDs []string) ([]models.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.selectedItems(itemIDs)
	if err != nil {
		return nil, err
	}
	return s.createDraftsLocked(ctx, draftpo.GroupOrderItems(items))
}

// CreateDraftPOs converts each group into a draft PO in input order and moves
// every member item to supplier_yet_to_confirm. Every member must exist and
// still be po_submitted; otherwise nothing changes.
func (s *Store) CreateDraftPOs(ctx context.Context, groups []draftpo.Group) ([]models.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createDraftsLocked(ctx, groups)
}

func (s *Store) createDraftsLocked(ctx context.Context, groups []draftpo.Group) ([]models.PurchaseOrder, error) {
	members := map[string]struct{}{}
	for gi, group := range groups {
		if len(group.Items) == 0 {
			return nil, pkgerrors.Validation("draft group has no items", map[string]string{
				fmt.Sprintf("groups[%d]", gi): "must contain at least one order item",
			})
		}
		for _, item := range group.Items {
			if _, dup := members[item.ID]; dup {
				return nil, pkgerrors.Validation("order item appears in more than one group", map[string]string{
					item.ID: "duplicated across groups",
				})
			}
			members[item.ID] = struct{}{}
			if err := s.checkSelectable(item.ID); err != nil {
				return nil, err
			}
		}
	}

	now := s.now()
	counter := s.nextDraftCounter
	created := make([]models.PurchaseOrder, 0, len(groups))
	for _, group := range groups {
		created = append(created, draftpo.ConvertGroup(group, counter, s.dir, now))
		counter++
	}

	for i := range s.orderItems {
		if _, ok := members[s.orderItems[i].ID]; ok {
			s.orderItems[i].Status = enums.OrderItemStatusSupplierYetToConfirm
		}
	}
	s.purchaseOrders = append(s.purchaseOrders, created...)
	s.nextDraftCounter = counter

	out := make([]models.PurchaseOrder, len(created))
	ids := make([]string, len(created))
	for i, po := range created {
		out[i] = po.Clone()
		ids[i] = po.ID
	}

	if len(created) > 0 {
		s.metrics.AddDraftsCreated(len(created))
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"po_ids":     ids,
			"item_count": len(members),
			"next_draft": s.nextDraftCounter,
		})
		s.logg.Info(logCtx, "po.drafts_created")
	}
	return out, nil
}

// DeleteDraftPO removes a draft PO and reverts its source items to po_submitted.
// Items that already moved past supplier_yet_to_confirm keep their status.
func (s *Store) DeleteDraftPO(ctx context.Context, poID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.purchaseOrderIndex(poID)
	if idx < 0 {
		return poNotFound(poID)
	}
	po := s.purchaseOrders[idx]
	if po.Status != enums.PurchaseOrderStatusDraft {
		return pkgerrors.StateConflict("only draft purchase orders can be deleted", map[string]any{
			"po_id":  poID,
			"status": po.Status,
		})
	}

	sources := make(map[string]struct{}, len(po.SourceOrderItemIDs))
	for _, id := range po.SourceOrderItemIDs {
		sources[id] = struct{}{}
	}
	reverted := 0
	for i := range s.orderItems {
		item := &s.orderItems[i]
		if _, ok := sources[item.ID]; !ok {
			continue
		}
		if item.Status == enums.OrderItemStatusSupplierYetToConfirm {
			item.Status = enums.OrderItemStatusPOSubmitted
			reverted++
		}
	}
	s.purchaseOrders = append(s.purchaseOrders[:idx:idx], s.purchaseOrders[idx+1:]...)

	s.metrics.IncDraftDeleted()
	logCtx := s.logg.WithPOID(ctx, poID)
	logCtx = s.logg.WithField(logCtx, "reverted_items", reverted)
	s.logg.Info(logCtx, "po.draft_deleted")
	return nil
}

// UpdatePOStatus moves a PO along the status graph and refreshes UpdatedAt.
// Setting the current status again is a no-op.
func (s *Store) UpdatePOStatus(ctx context.Context, poID string, status enums.PurchaseOrderStatus) (models.PurchaseOrder, error) {
	if !status.IsValid() {
		return models.PurchaseOrder{}, pkgerrors.Validation("invalid purchase order status", map[string]string{
			"status": fmt.Sprintf("unknown status %q", status),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.purchaseOrderIndex(poID)
	if idx < 0 {
		return models.PurchaseOrder{}, poNotFound(poID)
	}
	if err := s.transitionLocked(ctx, idx, status); err != nil {
		return models.PurchaseOrder{}, err
	}
	return s.purchaseOrders[idx].Clone(), nil
}

// ApplyAction runs a named review action. The PO must be in the action's source status.
func (s *Store) ApplyAction(ctx context.Context, poID string, action Action) (models.PurchaseOrder, error) {
	if _, ok := actionSpecs[action]; !ok {
		return models.PurchaseOrder{}, pkgerrors.Validation("invalid purchase order action", map[string]string{
			"action": fmt.Sprintf("unknown action %q", action),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.purchaseOrderIndex(poID)
	if idx < 0 {
		return models.PurchaseOrder{}, poNotFound(poID)
	}
	current := s.purchaseOrders[idx].Status
	if current != action.Source() {
		return models.PurchaseOrder{}, pkgerrors.StateConflict(
			fmt.Sprintf("%s requires status %s", action, action.Source()),
			map[string]any{"po_id": poID, "status": current, "action": action},
		)
	}
	if err := s.transitionLocked(ctx, idx, action.Target()); err != nil {
		return models.PurchaseOrder{}, err
	}
	return s.purchaseOrders[idx].Clone(), nil
}

// transitionLocked checks the status graph and moves the PO. A PO entering
// submitted with every line already answered settles in the same step.
func (s *Store) transitionLocked(ctx context.Context, idx int, status enums.PurchaseOrderStatus) error {
	po := &s.purchaseOrders[idx]
	from := po.Status
	if from == status {
		return nil
	}
	if !CanTransition(from, status) {
		return pkgerrors.StateConflict(
			fmt.Sprintf("cannot move purchase order from %s to %s", from, status),
			map[string]any{"po_id": po.ID, "from": from, "to": status, "allowed": NextStatuses(from)},
		)
	}
	s.setStatusLocked(ctx, idx, status)
	if status != enums.PurchaseOrderStatusSubmitted {
		return nil
	}
	if next, settled := settledStatus(po.LineItems); settled {
		s.setStatusLocked(ctx, idx, next)
	}
	return nil
}

func (s *Store) setStatusLocked(ctx context.Context, idx int, status enums.PurchaseOrderStatus) {
	po := &s.purchaseOrders[idx]
	from := po.Status
	po.Status = status
	po.UpdatedAt = s.now()

	s.metrics.IncPOTransition(string(from), string(status))
	logCtx := s.logg.WithPOID(ctx, po.ID)
	logCtx = s.logg.WithFields(logCtx, map[string]any{"from": from, "to": status})
	s.logg.Info(logCtx, "po.status_updated")
}

func (s *Store) selectedItems(itemIDs []string) ([]models.OrderItem, error) {
	if len(itemIDs) == 0 {
		return nil, pkgerrors.Validation("no order items selected", map[string]string{
			"order_item_ids": "must contain at least one id",
		})
	}
	seen := make(map[string]struct{}, len(itemIDs))
	items := make([]models.OrderItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if err := s.checkSelectable(id); err != nil {
			return nil, err
		}
		items = append(items, s.orderItems[s.orderItemIndex(id)])
	}
	return items, nil
}

func (s *Store) checkSelectable(id string) error {
	idx := s.orderItemIndex(id)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order item %s not found", id))
	}
	if status := s.orderItems[idx].Status; status != enums.OrderItemStatusPOSubmitted {
		return pkgerrors.StateConflict(
			fmt.Sprintf("order item %s is %s, only po_submitted items can be drafted", id, status),
			map[string]any{"order_item_id": id, "status": status},
		)
	}
	return nil
}

func (s *Store) orderItemIndex(id string) int {
	for i := range s.orderItems {
		if s.orderItems[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) purchaseOrderIndex(id string) int {
	for i := range s.purchaseOrders {
		if s.purchaseOrders[i].ID == id {
			return i
		}
	}
	return -1
}

func poNotFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("purchase order %s not found", id))
}
