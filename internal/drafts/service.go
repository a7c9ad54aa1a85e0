package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/metrics"
)

// Service encodes wizard drafts as JSON on top of a Store. Reads never fail:
// a missing, expired, unreadable or corrupt draft is reported as absent.
type Service struct {
	store   Store
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.ProcurementMetrics
}

func NewService(store Store, ttl time.Duration, logg *logger.Logger, m *metrics.ProcurementMetrics) (*Service, error) {
	if store == nil {
		return nil, errors.New("draft store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{store: store, ttl: ttl, logg: logg, metrics: m}, nil
}

func (s *Service) Load(ctx context.Context, awardID string, dest any) bool {
	key := Key(awardID)
	logCtx := s.logg.WithFields(s.logg.WithAwardID(ctx, awardID), map[string]any{"draft_key": key})

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		logCtx = s.logg.WithField(logCtx, "error", err.Error())
		s.logg.Warn(logCtx, "award.draft_unavailable")
		s.metrics.IncDraftStoreOp("load", "error")
		return false
	}
	if !ok {
		s.metrics.IncDraftStoreOp("load", "miss")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logCtx = s.logg.WithField(logCtx, "error", err.Error())
		s.logg.Warn(logCtx, "award.draft_corrupt")
		s.metrics.IncDraftStoreOp("load", "corrupt")
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logg.Error(logCtx, "award.draft_discard_failed", delErr)
		}
		return false
	}
	s.metrics.IncDraftStoreOp("load", "hit")
	return true
}

func (s *Service) Save(ctx context.Context, awardID string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		s.metrics.IncDraftStoreOp("save", "error")
		return err
	}
	if err := s.store.Put(ctx, Key(awardID), raw, s.ttl); err != nil {
		s.metrics.IncDraftStoreOp("save", "error")
		return err
	}
	s.metrics.IncDraftStoreOp("save", "ok")
	return nil
}

func (s *Service) Discard(ctx context.Context, awardID string) error {
	if err := s.store.Delete(ctx, Key(awardID)); err != nil {
		s.metrics.IncDraftStoreOp("discard", "error")
		return err
	}
	s.metrics.IncDraftStoreOp("discard", "ok")
	return nil
}

// Ping checks the backend for readiness probes.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
