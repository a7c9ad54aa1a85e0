// Package awards serves supplier awards and the supply confirmation wizard.
package awards

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/procureflow-backend/api/responses"
	"github.com/angelmondragon/procureflow-backend/api/validators"
	internalawards "github.com/angelmondragon/procureflow-backend/internal/awards"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
)

// Reader exposes award snapshots.
type Reader interface {
	Awards() []models.SupplierAward
	Award(id string) (models.SupplierAward, error)
}

// ListResponse carries the filtered awards and the per-status tab counts.
type ListResponse struct {
	Awards []models.SupplierAward    `json:"awards"`
	Counts map[enums.AwardStatus]int `json:"counts"`
}

func List(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "award store unavailable"))
			return
		}
		status, err := validators.ParseQueryEnum(r, "status", enums.ParseAwardStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		all := reader.Awards()
		responses.WriteSuccess(w, ListResponse{
			Awards: internalawards.FilterByStatus(all, status),
			Counts: internalawards.CountByStatus(all),
		})
	}
}

func Detail(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "award store unavailable"))
			return
		}
		awardID, err := parseAwardID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		award, err := reader.Award(awardID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, award)
	}
}

// WizardResume returns the wizard at the saved step, or a fresh one.
func WizardResume(svc internalawards.Service, logg *logger.Logger) http.HandlerFunc {
	return wizardStep(svc, logg, internalawards.Service.Resume)
}

func WizardBack(svc internalawards.Service, logg *logger.Logger) http.HandlerFunc {
	return wizardStep(svc, logg, internalawards.Service.Back)
}

func WizardDiscard(svc internalawards.Service, logg *logger.Logger) http.HandlerFunc {
	return wizardStep(svc, logg, internalawards.Service.Discard)
}

// WizardConfirm commits the reviewed answers through confirmSupply.
func WizardConfirm(svc internalawards.Service, logg *logger.Logger) http.HandlerFunc {
	return wizardStep(svc, logg, internalawards.Service.Confirm)
}

func Withdraw(svc internalawards.Service, logg *logger.Logger) http.HandlerFunc {
	return wizardStep(svc, logg, internalawards.Service.Withdraw)
}

// WizardAdvance validates the current step's answer and moves forward.
func WizardAdvance(svc internalawards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "award wizard unavailable"))
			return
		}
		awardID, err := parseAwardID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var in internalawards.AdvanceInput
		if err := validators.DecodeJSONBody(r, &in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithAwardID(r.Context(), awardID)
		view, err := svc.Advance(ctx, awardID, in)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func wizardStep(svc internalawards.Service, logg *logger.Logger, step func(internalawards.Service, context.Context, string) (internalawards.WizardView, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "award wizard unavailable"))
			return
		}
		awardID, err := parseAwardID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithAwardID(r.Context(), awardID)
		view, err := step(svc, ctx, awardID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func parseAwardID(r *http.Request) (string, error) {
	awardID := strings.TrimSpace(chi.URLParam(r, "awardId"))
	if awardID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "award id is required")
	}
	return awardID, nil
}
