package purchaseorders

import (
	"fmt"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
)

var allowedTransitions = map[enums.PurchaseOrderStatus][]enums.PurchaseOrderStatus{
	enums.PurchaseOrderStatusDraft: {
		enums.PurchaseOrderStatusClearedByCommercial,
	},
	enums.PurchaseOrderStatusClearedByCommercial: {
		enums.PurchaseOrderStatusDraft,
		enums.PurchaseOrderStatusSubmitted,
	},
	enums.PurchaseOrderStatusSubmitted: {
		enums.PurchaseOrderStatusConfirmed,
		enums.PurchaseOrderStatusPartiallyConfirmed,
	},
}

// CanTransition reports whether a purchase order may move from one status to another.
func CanTransition(from, to enums.PurchaseOrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from status in one step.
func NextStatuses(status enums.PurchaseOrderStatus) []enums.PurchaseOrderStatus {
	return append([]enums.PurchaseOrderStatus(nil), allowedTransitions[status]...)
}

// IsEditable reports whether the review screen may change a PO's fields.
func IsEditable(status enums.PurchaseOrderStatus) bool {
	return status == enums.PurchaseOrderStatusDraft || status == enums.PurchaseOrderStatusClearedByCommercial
}

// Action is a named commercial review step.
type Action string

const (
	ActionMarkCompleted  Action = "mark-completed"
	ActionSendBack       Action = "send-back"
	ActionSendToSupplier Action = "send-to-supplier"
)

type actionSpec struct {
	from enums.PurchaseOrderStatus
	to   enums.PurchaseOrderStatus
}

var actionSpecs = map[Action]actionSpec{
	ActionMarkCompleted:  {from: enums.PurchaseOrderStatusDraft, to: enums.PurchaseOrderStatusClearedByCommercial},
	ActionSendBack:       {from: enums.PurchaseOrderStatusClearedByCommercial, to: enums.PurchaseOrderStatusDraft},
	ActionSendToSupplier: {from: enums.PurchaseOrderStatusClearedByCommercial, to: enums.PurchaseOrderStatusSubmitted},
}

func ParseAction(value string) (Action, error) {
	action := Action(value)
	if _, ok := actionSpecs[action]; !ok {
		return "", fmt.Errorf("invalid purchase order action %q", value)
	}
	return action, nil
}

// Target returns the status the action moves a PO into.
func (a Action) Target() enums.PurchaseOrderStatus {
	return actionSpecs[a].to
}

// Source returns the status a PO must be in for the action to apply.
func (a Action) Source() enums.PurchaseOrderStatus {
	return actionSpecs[a].from
}
