package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/procureflow-backend/api/controllers"
	awardcontrollers "github.com/angelmondragon/procureflow-backend/api/controllers/awards"
	"github.com/angelmondragon/procureflow-backend/api/controllers/orderitems"
	pocontrollers "github.com/angelmondragon/procureflow-backend/api/controllers/purchaseorders"
	"github.com/angelmondragon/procureflow-backend/api/middleware"
	"github.com/angelmondragon/procureflow-backend/internal/awards"
	"github.com/angelmondragon/procureflow-backend/internal/purchaseorders"
	"github.com/angelmondragon/procureflow-backend/pkg/config"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
)

// NewRouter mounts the health, metrics and procurement API routes. A nil
// metricsHandler leaves /metrics unmounted.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	poStore *purchaseorders.Store,
	awardStore *awards.Store,
	wizard awards.Service,
	draftPinger controllers.Pinger,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, draftPinger))
	})

	if cfg.Metrics.Enabled && metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/order-items", func(r chi.Router) {
			r.Get("/", orderitems.List(poStore, logg))
			r.Get("/cycles", orderitems.Cycles(poStore, logg))
			r.Post("/draft-preview", orderitems.DraftPreview(poStore, logg))
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", pocontrollers.List(poStore, logg))
			r.Get("/summary", pocontrollers.Summary(poStore, logg))
			r.Get("/fulfillment", pocontrollers.Fulfillment(poStore, logg))
			r.Post("/drafts", pocontrollers.CreateDrafts(poStore, logg))
			r.Route("/{poId}", func(r chi.Router) {
				r.Get("/", pocontrollers.Detail(poStore, logg))
				r.Delete("/", pocontrollers.Delete(poStore, logg))
				r.Post("/status", pocontrollers.UpdateStatus(poStore, logg))
				r.Post("/actions/{action}", pocontrollers.ApplyAction(poStore, logg))
			})
		})

		r.Route("/awards", func(r chi.Router) {
			r.Get("/", awardcontrollers.List(awardStore, logg))
			r.Route("/{awardId}", func(r chi.Router) {
				r.Get("/", awardcontrollers.Detail(awardStore, logg))
				r.Post("/withdraw", awardcontrollers.Withdraw(wizard, logg))
				r.Route("/wizard", func(r chi.Router) {
					r.Get("/", awardcontrollers.WizardResume(wizard, logg))
					r.Delete("/", awardcontrollers.WizardDiscard(wizard, logg))
					r.Post("/advance", awardcontrollers.WizardAdvance(wizard, logg))
					r.Post("/back", awardcontrollers.WizardBack(wizard, logg))
					r.Post("/confirm", awardcontrollers.WizardConfirm(wizard, logg))
				})
			})
		})
	})

	return r
}
