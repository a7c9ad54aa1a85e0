// Package awards owns supplier awards and the supply confirmation wizard.
package awards

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/procureflow-backend/internal/allocation"
	"github.com/angelmondragon/procureflow-backend/internal/purchaseorders"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/metrics"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// OutcomeRecorder receives every final award decision.
type OutcomeRecorder interface {
	RecordAwardOutcome(ctx context.Context, outcome purchaseorders.AwardOutcome) (purchaseorders.OutcomeResult, error)
}

// Confirmation is a complete supply confirmation request.
type Confirmation struct {
	Quantity   QuantityInput   `json:"quantity"`
	Enrichment EnrichmentInput `json:"enrichment"`
}

// Store is the authoritative award state. Awards leave pending_confirmation
// exactly once.
type Store struct {
	mu     sync.RWMutex
	awards []models.SupplierAward

	recorder OutcomeRecorder
	now      func() time.Time
	logg     *logger.Logger
	metrics  *metrics.ProcurementMetrics
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

// WithOutcomeRecorder forwards final decisions, typically to the PO store.
func WithOutcomeRecorder(recorder OutcomeRecorder) Option {
	return func(s *Store) {
		s.recorder = recorder
	}
}

func NewStore(awards []models.SupplierAward, opts ...Option) *Store {
	s := &Store{
		awards: make([]models.SupplierAward, len(awards)),
		now:    func() time.Time { return time.Now().UTC() },
		logg:   logger.Nop(),
	}
	for i, award := range awards {
		s.awards[i] = award.Clone()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Awards() []models.SupplierAward {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SupplierAward, len(s.awards))
	for i, award := range s.awards {
		out[i] = award.Clone()
	}
	return out
}

func (s *Store) Award(id string) (models.SupplierAward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.index(id)
	if idx < 0 {
		return models.SupplierAward{}, awardNotFound(id)
	}
	return s.awards[idx].Clone(), nil
}

// ConfirmSupply records a full or partial confirmation with its allocation and
// technical enrichment. Nothing changes unless every input validates.
func (s *Store) ConfirmSupply(ctx context.Context, awardID string, in Confirmation) (models.SupplierAward, error) {
	s.mu.Lock()
	idx := s.index(awardID)
	if idx < 0 {
		s.mu.Unlock()
		return models.SupplierAward{}, awardNotFound(awardID)
	}
	award := s.awards[idx]
	if err := requirePending(award); err != nil {
		s.mu.Unlock()
		return models.SupplierAward{}, err
	}

	choice, err := ChooseQuantity(award, in.Quantity)
	if err == nil && choice.Type == enums.ConfirmationTypeWithdraw {
		err = pkgerrors.Validation("withdrawal is not a supply confirmation", map[string]string{
			"type": "must be full or partial",
		})
	}
	if err != nil {
		s.mu.Unlock()
		return models.SupplierAward{}, err
	}
	splits, err := allocation.ComputeProportionalSplit(award.PlannedShipments, choice.Quantity)
	if err != nil {
		s.mu.Unlock()
		return models.SupplierAward{}, err
	}
	enrichment, err := in.Enrichment.Build(choice.Quantity)
	if err != nil {
		s.mu.Unlock()
		return models.SupplierAward{}, err
	}

	now := s.now()
	qty := choice.Quantity
	updated := award.Clone()
	updated.Status = choice.Type.AwardStatus()
	updated.ConfirmedQuantity = &qty
	updated.ConfirmationType = choice.Type
	updated.ConfirmedAllocations = allocation.ToConfirmedAllocations(splits)
	updated.TechnicalEnrichment = &enrichment
	updated.DecidedAt = &now
	s.awards[idx] = updated
	s.mu.Unlock()

	s.metrics.IncAwardDecision(string(updated.Status))
	logCtx := s.logg.WithAwardID(ctx, awardID)
	logCtx = s.logg.WithFields(logCtx, map[string]any{
		"status":             updated.Status,
		"confirmed_quantity": qty,
		"total_quantity":     updated.TotalQuantity,
	})
	s.logg.Info(logCtx, "award.confirmed")

	s.publish(logCtx, updated)
	return updated.Clone(), nil
}

// Withdraw declines a pending award. No enrichment is taken.
func (s *Store) Withdraw(ctx context.Context, awardID string) (models.SupplierAward, error) {
	s.mu.Lock()
	idx := s.index(awardID)
	if idx < 0 {
		s.mu.Unlock()
		return models.SupplierAward{}, awardNotFound(awardID)
	}
	if err := requirePending(s.awards[idx]); err != nil {
		s.mu.Unlock()
		return models.SupplierAward{}, err
	}
	now := s.now()
	updated := s.awards[idx].Clone()
	updated.Status = enums.AwardStatusWithdrawn
	updated.ConfirmationType = enums.ConfirmationTypeWithdraw
	updated.DecidedAt = &now
	s.awards[idx] = updated
	s.mu.Unlock()

	s.metrics.IncAwardDecision(string(updated.Status))
	logCtx := s.logg.WithAwardID(ctx, awardID)
	s.logg.Info(logCtx, "award.withdrawn")

	s.publish(logCtx, updated)
	return updated.Clone(), nil
}

// publish hands the decision to the recorder. The award decision stands even
// when recording fails.
func (s *Store) publish(ctx context.Context, award models.SupplierAward) {
	if s.recorder == nil {
		return
	}
	outcome := purchaseorders.AwardOutcome{
		AwardID:     award.ID,
		SKU:         award.SKUName,
		Status:      award.Status,
		Allocations: award.ConfirmedAllocations,
	}
	if award.Status == enums.AwardStatusWithdrawn {
		outcome.Allocations = make([]models.ConfirmedAllocation, 0, len(award.PlannedShipments))
		for _, shipment := range award.PlannedShipments {
			outcome.Allocations = append(outcome.Allocations, models.ConfirmedAllocation{
				PONumber:   shipment.PONumber,
				Location:   shipment.Location,
				Percentage: shipment.Percentage,
			})
		}
	}
	if _, err := s.recorder.RecordAwardOutcome(ctx, outcome); err != nil {
		s.logg.Error(ctx, "award.outcome_not_recorded", err)
	}
}

func requirePending(award models.SupplierAward) error {
	if award.Status == enums.AwardStatusPendingConfirmation {
		return nil
	}
	return pkgerrors.StateConflict(
		fmt.Sprintf("award %s is already %s", award.ID, award.Status),
		map[string]any{"award_id": award.ID, "status": award.Status},
	)
}

func (s *Store) index(id string) int {
	for i := range s.awards {
		if s.awards[i].ID == id {
			return i
		}
	}
	return -1
}

func awardNotFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("award %s not found", id))
}
