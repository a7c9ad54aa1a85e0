package awards

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/procureflow-backend/internal/allocation"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// DraftStore saves wizard progress per award. Load reports false for any
// missing or unreadable draft.
type DraftStore interface {
	Load(ctx context.Context, awardID string, dest any) bool
	Save(ctx context.Context, awardID string, value any) error
	Discard(ctx context.Context, awardID string) error
}

// WizardView is what a client needs to render the current wizard step.
type WizardView struct {
	AwardID             string                      `json:"award_id"`
	Step                Step                        `json:"step"`
	StepName            string                      `json:"step_name"`
	Completed           bool                        `json:"completed"`
	Quantity            *QuantityInput              `json:"quantity,omitempty"`
	ConfirmationType    enums.ConfirmationType      `json:"confirmation_type,omitempty"`
	ConfirmedQuantity   int64                       `json:"confirmed_quantity,omitempty"`
	Allocations         []allocation.Split          `json:"allocations,omitempty"`
	Enrichment          *EnrichmentInput            `json:"enrichment,omitempty"`
	TechnicalEnrichment *models.TechnicalEnrichment `json:"technical_enrichment,omitempty"`
	Award               models.SupplierAward        `json:"award"`
	Resumed             bool                        `json:"resumed"`
	DraftSaved          bool                        `json:"draft_saved"`
}

// Service drives the confirmation wizard for one award at a time. Progress
// between calls lives only in the draft store.
type Service interface {
	Resume(ctx context.Context, awardID string) (WizardView, error)
	Advance(ctx context.Context, awardID string, in AdvanceInput) (WizardView, error)
	Back(ctx context.Context, awardID string) (WizardView, error)
	Discard(ctx context.Context, awardID string) (WizardView, error)
	Confirm(ctx context.Context, awardID string) (WizardView, error)
	Withdraw(ctx context.Context, awardID string) (WizardView, error)
}

type service struct {
	store  *Store
	drafts DraftStore
	now    func() time.Time
	logg   *logger.Logger
}

// NewService wires the wizard to the award store and a draft store.
func NewService(store *Store, drafts DraftStore, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, errors.New("award store required")
	}
	if drafts == nil {
		return nil, errors.New("draft store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:  store,
		drafts: drafts,
		now:    store.now,
		logg:   logg,
	}, nil
}

func (s *service) Resume(ctx context.Context, awardID string) (WizardView, error) {
	award, state, resumed, err := s.current(ctx, awardID)
	if err != nil {
		return WizardView{}, err
	}
	if state == nil {
		return completedView(award), nil
	}
	view := buildView(award, state)
	view.Resumed = resumed
	view.DraftSaved = resumed
	return view, nil
}

func (s *service) Advance(ctx context.Context, awardID string, in AdvanceInput) (WizardView, error) {
	award, state, _, err := s.current(ctx, awardID)
	if err != nil {
		return WizardView{}, err
	}
	if state == nil {
		return WizardView{}, requirePending(award)
	}
	next, err := Advance(award, state, in)
	if err != nil {
		return WizardView{}, err
	}
	if _, ok := next.(WithdrawRequested); ok {
		return s.Withdraw(ctx, awardID)
	}
	return s.save(ctx, award, next), nil
}

func (s *service) Back(ctx context.Context, awardID string) (WizardView, error) {
	award, state, _, err := s.current(ctx, awardID)
	if err != nil {
		return WizardView{}, err
	}
	if state == nil {
		return WizardView{}, requirePending(award)
	}
	prev, err := Back(state)
	if err != nil {
		return WizardView{}, err
	}
	return s.save(ctx, award, prev), nil
}

// Discard drops saved progress and returns the wizard to its first step.
func (s *service) Discard(ctx context.Context, awardID string) (WizardView, error) {
	award, err := s.store.Award(awardID)
	if err != nil {
		return WizardView{}, err
	}
	s.clear(ctx, awardID)
	if award.Status != enums.AwardStatusPendingConfirmation {
		return completedView(award), nil
	}
	return buildView(award, Start()), nil
}

func (s *service) Confirm(ctx context.Context, awardID string) (WizardView, error) {
	award, state, _, err := s.current(ctx, awardID)
	if err != nil {
		return WizardView{}, err
	}
	if state == nil {
		return WizardView{}, requirePending(award)
	}
	review, ok := state.(ReviewState)
	if !ok {
		return WizardView{}, pkgerrors.StateConflict("supply can only be confirmed from the review step", map[string]any{
			"award_id": awardID,
			"step":     state.Step().String(),
		})
	}
	updated, err := s.store.ConfirmSupply(ctx, awardID, Confirmation{
		Quantity:   *choiceInput(review.Choice),
		Enrichment: review.Input,
	})
	if err != nil {
		return WizardView{}, err
	}
	s.clear(ctx, awardID)
	return completedView(updated), nil
}

func (s *service) Withdraw(ctx context.Context, awardID string) (WizardView, error) {
	updated, err := s.store.Withdraw(ctx, awardID)
	if err != nil {
		return WizardView{}, err
	}
	s.clear(ctx, awardID)
	return completedView(updated), nil
}

// current loads the award and its wizard state. A nil state means the award is
// already decided. Drafts that no longer replay are discarded.
func (s *service) current(ctx context.Context, awardID string) (models.SupplierAward, State, bool, error) {
	award, err := s.store.Award(awardID)
	if err != nil {
		return models.SupplierAward{}, nil, false, err
	}
	if award.Status != enums.AwardStatusPendingConfirmation {
		return award, nil, false, nil
	}

	var draft Draft
	if !s.drafts.Load(ctx, awardID, &draft) {
		return award, Start(), false, nil
	}
	state, err := Restore(award, draft)
	if err != nil {
		logCtx := s.logg.WithAwardID(ctx, awardID)
		logCtx = s.logg.WithField(logCtx, "reason", err.Error())
		s.logg.Warn(logCtx, "award.draft_invalid")
		s.clear(ctx, awardID)
		return award, Start(), false, nil
	}
	return award, state, true, nil
}

func (s *service) save(ctx context.Context, award models.SupplierAward, state State) WizardView {
	view := buildView(award, state)
	if err := s.drafts.Save(ctx, award.ID, ToDraft(award.ID, state, s.now())); err != nil {
		s.logg.Error(s.logg.WithAwardID(ctx, award.ID), "award.draft_save_failed", err)
		return view
	}
	view.DraftSaved = true
	return view
}

func (s *service) clear(ctx context.Context, awardID string) {
	if err := s.drafts.Discard(ctx, awardID); err != nil {
		s.logg.Error(s.logg.WithAwardID(ctx, awardID), "award.draft_discard_failed", err)
	}
}

func buildView(award models.SupplierAward, state State) WizardView {
	view := WizardView{
		AwardID:  award.ID,
		Step:     state.Step(),
		StepName: state.Step().String(),
		Award:    award,
	}
	switch st := state.(type) {
	case QuantityState:
		view.Quantity = st.Previous
		view.Enrichment = st.Enrichment
	case AllocationState:
		view.setChoice(st.Choice, st.Splits)
		view.Enrichment = st.Enrichment
	case EnrichmentState:
		view.setChoice(st.Choice, st.Splits)
		view.Enrichment = st.Enrichment
	case ReviewState:
		view.setChoice(st.Choice, st.Splits)
		input := st.Input
		enrichment := st.Enrichment
		view.Enrichment = &input
		view.TechnicalEnrichment = &enrichment
	}
	return view
}

func (v *WizardView) setChoice(choice QuantityChoice, splits []allocation.Split) {
	v.Quantity = choiceInput(choice)
	v.ConfirmationType = choice.Type
	v.ConfirmedQuantity = choice.Quantity
	v.Allocations = splits
}

func completedView(award models.SupplierAward) WizardView {
	view := WizardView{
		AwardID:             award.ID,
		Step:                StepReview,
		StepName:            StepReview.String(),
		Completed:           true,
		ConfirmationType:    award.ConfirmationType,
		TechnicalEnrichment: award.TechnicalEnrichment,
		Award:               award,
	}
	if award.ConfirmedQuantity != nil {
		view.ConfirmedQuantity = *award.ConfirmedQuantity
	}
	return view
}
