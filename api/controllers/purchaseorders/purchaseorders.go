// Package purchaseorders serves draft creation and the PO review lifecycle.
package purchaseorders

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/procureflow-backend/api/controllers/orderitems"
	"github.com/angelmondragon/procureflow-backend/api/responses"
	"github.com/angelmondragon/procureflow-backend/api/validators"
	internalpo "github.com/angelmondragon/procureflow-backend/internal/purchaseorders"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// Store is the subset of the PO lifecycle store the handlers drive.
type Store interface {
	PurchaseOrders() []models.PurchaseOrder
	PurchaseOrder(id string) (models.PurchaseOrder, error)
	CreateDraftPOsFromSelection(ctx context.Context, itemIDs []string) ([]models.PurchaseOrder, error)
	DeleteDraftPO(ctx context.Context, poID string) error
	UpdatePOStatus(ctx context.Context, poID string, status enums.PurchaseOrderStatus) (models.PurchaseOrder, error)
	ApplyAction(ctx context.Context, poID string, action internalpo.Action) (models.PurchaseOrder, error)
}

// StatusRequest is the body of a direct status update.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DetailResponse is a PO plus what the review screen derives from it.
type DetailResponse struct {
	PurchaseOrder     models.PurchaseOrder        `json:"purchase_order"`
	Editable          bool                        `json:"editable"`
	NextStatuses      []enums.PurchaseOrderStatus `json:"next_statuses"`
	ConfirmedSubtotal decimal.Decimal             `json:"confirmed_subtotal"`
}

func newDetail(po models.PurchaseOrder) DetailResponse {
	return DetailResponse{
		PurchaseOrder:     po,
		Editable:          internalpo.IsEditable(po.Status),
		NextStatuses:      internalpo.NextStatuses(po.Status),
		ConfirmedSubtotal: internalpo.ConfirmedSubtotal(po),
	}
}

// CreateDrafts groups the selected order items and creates one draft PO per group.
func CreateDrafts(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		var req orderitems.SelectionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := store.CreateDraftPOsFromSelection(r.Context(), req.OrderItemIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func List(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		status, err := validators.ParseQueryEnum(r, "status", enums.ParsePurchaseOrderStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalpo.FilterPurchaseOrders(store.PurchaseOrders(), status))
	}
}

// Summary returns the per-status counts used by the listing tabs.
func Summary(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		responses.WriteSuccess(w, internalpo.CountByStatus(store.PurchaseOrders()))
	}
}

// Fulfillment lists supplier-answered POs grouped by destination. ?po_number= narrows by PO number.
func Fulfillment(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		search := validators.QueryString(r, "po_number")
		responses.WriteSuccess(w, internalpo.FulfillmentByLocation(store.PurchaseOrders(), search))
	}
}

func Detail(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		poID, err := parsePOID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		po, err := store.PurchaseOrder(poID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDetail(po))
	}
}

// Delete removes a draft PO and returns its items to po_submitted.
func Delete(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		poID, err := parsePOID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.DeleteDraftPO(r.Context(), poID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": poID, "deleted": true})
	}
}

func UpdateStatus(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		poID, err := parsePOID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req StatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParsePurchaseOrderStatus(strings.TrimSpace(req.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Validation("invalid status", map[string]string{"status": "is invalid"}))
			return
		}
		po, err := store.UpdatePOStatus(r.Context(), poID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDetail(po))
	}
}

// ApplyAction runs a named review action such as mark-completed.
func ApplyAction(store Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase order store unavailable"))
			return
		}
		poID, err := parsePOID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		action, err := internalpo.ParseAction(strings.TrimSpace(chi.URLParam(r, "action")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown action").
				WithDetails(map[string]string{"action": "is invalid"}))
			return
		}
		po, err := store.ApplyAction(r.Context(), poID, action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDetail(po))
	}
}

func parsePOID(r *http.Request) (string, error) {
	poID := strings.TrimSpace(chi.URLParam(r, "poId"))
	if poID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "purchase order id is required")
	}
	return poID, nil
}
