// Package orderitems serves the order item listing and draft grouping preview.
package orderitems

import (
	"net/http"

	"github.com/angelmondragon/procureflow-backend/api/responses"
	"github.com/angelmondragon/procureflow-backend/api/validators"
	"github.com/angelmondragon/procureflow-backend/internal/draftpo"
	"github.com/angelmondragon/procureflow-backend/internal/purchaseorders"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// Catalog is the read side of the PO lifecycle store the handlers need.
type Catalog interface {
	OrderItems() []models.OrderItem
	PreviewSelection(itemIDs []string) ([]draftpo.Group, error)
}

// SelectionRequest names the order items picked for draft creation.
type SelectionRequest struct {
	OrderItemIDs []string `json:"order_item_ids" validate:"required,min=1,dive,required"`
}

// List returns order items, optionally narrowed by status and cycle_id.
func List(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order item catalog unavailable"))
			return
		}
		status, err := validators.ParseQueryEnum(r, "status", enums.ParseOrderItemStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items := purchaseorders.FilterOrderItems(catalog.OrderItems(), purchaseorders.OrderItemFilter{
			Status:  status,
			CycleID: validators.QueryString(r, "cycle_id"),
		})
		responses.WriteSuccess(w, items)
	}
}

func Cycles(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order item catalog unavailable"))
			return
		}
		responses.WriteSuccess(w, purchaseorders.CycleOptions(catalog.OrderItems()))
	}
}

// DraftPreview groups the selection the way draft creation would, without committing.
func DraftPreview(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order item catalog unavailable"))
			return
		}
		var req SelectionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		groups, err := catalog.PreviewSelection(req.OrderItemIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, groups)
	}
}
