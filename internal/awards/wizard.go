package awards

import (
	"fmt"
	"time"

	"github.com/angelmondragon/procureflow-backend/internal/allocation"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// Step indexes the confirmation wizard screens.
type Step int

const (
	StepQuantity Step = iota
	StepAllocation
	StepEnrichment
	StepReview
)

var stepNames = map[Step]string{
	StepQuantity:   "quantity",
	StepAllocation: "allocation",
	StepEnrichment: "technical_enrichment",
	StepReview:     "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step_%d", int(s))
}

// State is one variant of the wizard. Each variant carries only the values that
// are valid once its step is reached.
type State interface {
	Step() Step
}

// QuantityInput answers the quantity step.
type QuantityInput struct {
	Type     string `json:"type"`
	Quantity int64  `json:"quantity,omitempty"`
}

// QuantityChoice is a validated supply confirmation quantity.
type QuantityChoice struct {
	Type     enums.ConfirmationType `json:"type"`
	Quantity int64                  `json:"quantity"`
}

// QuantityState is step 0. Previous answers are kept so stepping back can prefill them.
type QuantityState struct {
	Previous   *QuantityInput
	Enrichment *EnrichmentInput
}

// AllocationState is step 1: the derived split is shown for acknowledgement.
type AllocationState struct {
	Choice     QuantityChoice
	Splits     []allocation.Split
	Enrichment *EnrichmentInput
}

// EnrichmentState is step 2.
type EnrichmentState struct {
	Choice     QuantityChoice
	Splits     []allocation.Split
	Enrichment *EnrichmentInput
}

// ReviewState is step 3: everything needed to confirm supply.
type ReviewState struct {
	Choice     QuantityChoice
	Splits     []allocation.Split
	Input      EnrichmentInput
	Enrichment models.TechnicalEnrichment
}

// WithdrawRequested ends the wizard from step 0 without further steps.
type WithdrawRequested struct{}

func (QuantityState) Step() Step { return StepQuantity }
func (AllocationState) Step() Step { return StepAllocation }
func (EnrichmentState) Step() Step { return StepEnrichment }
func (ReviewState) Step() Step { return StepReview }
func (WithdrawRequested) Step() Step { return StepQuantity }

// AdvanceInput carries the answer for the current step; other fields are ignored.
type AdvanceInput struct {
	Quantity   *QuantityInput   `json:"quantity,omitempty"`
	Enrichment *EnrichmentInput `json:"enrichment,omitempty"`
}

// Start returns the initial wizard state for an award.
func Start() State {
	return QuantityState{}
}

// ChooseQuantity validates the quantity step against the award.
func ChooseQuantity(award models.SupplierAward, in QuantityInput) (QuantityChoice, error) {
	kind, err := enums.ParseConfirmationType(in.Type)
	if err != nil {
		return QuantityChoice{}, pkgerrors.Validation("invalid confirmation type", map[string]string{
			"type": "must be one of full, partial, withdraw",
		})
	}
	switch kind {
	case enums.ConfirmationTypeFull:
		return QuantityChoice{Type: kind, Quantity: award.TotalQuantity}, nil
	case enums.ConfirmationTypePartial:
		if in.Quantity <= 0 || in.Quantity >= award.TotalQuantity {
			return QuantityChoice{}, pkgerrors.Validation("invalid partial quantity", map[string]string{
				"quantity": fmt.Sprintf("must be greater than 0 and less than %d", award.TotalQuantity),
			})
		}
		return QuantityChoice{Type: kind, Quantity: in.Quantity}, nil
	}
	return QuantityChoice{Type: kind}, nil
}

// Advance validates the current step's answer and returns the next variant.
func Advance(award models.SupplierAward, current State, in AdvanceInput) (State, error) {
	switch st := current.(type) {
	case QuantityState:
		if in.Quantity == nil {
			return nil, pkgerrors.Validation("quantity answer required", map[string]string{"quantity": "is required"})
		}
		choice, err := ChooseQuantity(award, *in.Quantity)
		if err != nil {
			return nil, err
		}
		if choice.Type == enums.ConfirmationTypeWithdraw {
			return WithdrawRequested{}, nil
		}
		splits, err := allocation.ComputeProportionalSplit(award.PlannedShipments, choice.Quantity)
		if err != nil {
			return nil, err
		}
		return AllocationState{Choice: choice, Splits: splits, Enrichment: st.Enrichment}, nil

	case AllocationState:
		return EnrichmentState{Choice: st.Choice, Splits: st.Splits, Enrichment: st.Enrichment}, nil

	case EnrichmentState:
		if in.Enrichment == nil {
			return nil, pkgerrors.Validation("technical enrichment required", map[string]string{"enrichment": "is required"})
		}
		enrichment, err := in.Enrichment.Build(st.Choice.Quantity)
		if err != nil {
			return nil, err
		}
		return ReviewState{Choice: st.Choice, Splits: st.Splits, Input: *in.Enrichment, Enrichment: enrichment}, nil

	case ReviewState:
		return nil, pkgerrors.StateConflict("review is the last step, confirm supply instead", map[string]any{"step": StepReview.String()})
	}
	return nil, pkgerrors.StateConflict("wizard has finished", nil)
}

// Back returns the previous variant, keeping what was already entered.
func Back(current State) (State, error) {
	switch st := current.(type) {
	case AllocationState:
		return QuantityState{Previous: choiceInput(st.Choice), Enrichment: st.Enrichment}, nil
	case EnrichmentState:
		return AllocationState{Choice: st.Choice, Splits: st.Splits, Enrichment: st.Enrichment}, nil
	case ReviewState:
		input := st.Input
		return EnrichmentState{Choice: st.Choice, Splits: st.Splits, Enrichment: &input}, nil
	}
	return nil, pkgerrors.StateConflict("already at the first step", map[string]any{"step": current.Step().String()})
}

func choiceInput(choice QuantityChoice) *QuantityInput {
	return &QuantityInput{Type: string(choice.Type), Quantity: choice.Quantity}
}

// Draft is the persisted form of a wizard in progress.
type Draft struct {
	AwardID    string           `json:"award_id"`
	Step       Step             `json:"step"`
	Quantity   *QuantityInput   `json:"quantity,omitempty"`
	Enrichment *EnrichmentInput `json:"enrichment,omitempty"`
	SavedAt    time.Time        `json:"saved_at"`
}

// ToDraft flattens a state into its saved form.
func ToDraft(awardID string, state State, now time.Time) Draft {
	d := Draft{AwardID: awardID, Step: state.Step(), SavedAt: now}
	switch st := state.(type) {
	case QuantityState:
		d.Quantity = st.Previous
		d.Enrichment = st.Enrichment
	case AllocationState:
		d.Quantity = choiceInput(st.Choice)
		d.Enrichment = st.Enrichment
	case EnrichmentState:
		d.Quantity = choiceInput(st.Choice)
		d.Enrichment = st.Enrichment
	case ReviewState:
		d.Quantity = choiceInput(st.Choice)
		input := st.Input
		d.Enrichment = &input
	}
	return d
}

// Restore replays a saved draft against the award. Any draft that no longer
// validates is rejected so the caller can start over.
func Restore(award models.SupplierAward, d Draft) (State, error) {
	if d.AwardID != award.ID {
		return nil, fmt.Errorf("draft belongs to award %q", d.AwardID)
	}
	if award.Status != enums.AwardStatusPendingConfirmation {
		return nil, fmt.Errorf("award %s is %s", award.ID, award.Status)
	}
	if d.Step < StepQuantity || d.Step > StepReview {
		return nil, fmt.Errorf("unknown step %d", d.Step)
	}

	var state State = QuantityState{Previous: d.Quantity, Enrichment: d.Enrichment}
	if d.Step == StepQuantity {
		return state, nil
	}
	if d.Quantity == nil {
		return nil, fmt.Errorf("draft at step %s has no quantity", d.Step)
	}

	state, err := Advance(award, state, AdvanceInput{Quantity: d.Quantity})
	if err != nil {
		return nil, err
	}
	if _, ok := state.(AllocationState); !ok {
		return nil, fmt.Errorf("draft quantity does not lead to allocation")
	}
	for state.Step() < d.Step {
		state, err = Advance(award, state, AdvanceInput{Enrichment: d.Enrichment})
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}
