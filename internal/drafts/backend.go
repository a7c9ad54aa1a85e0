package drafts

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/config"
	"github.com/angelmondragon/procureflow-backend/pkg/db"
	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/migrate"
	pkgredis "github.com/angelmondragon/procureflow-backend/pkg/redis"
)

// Backend is an opened Store plus the cleanup for its connection.
type Backend struct {
	Store Store
	Close func() error
}

// Open connects the backend selected by cfg.Drafts.Backend.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Backend, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	backend, err := enums.ParseDraftBackend(cfg.Drafts.Backend)
	if err != nil {
		return Backend{}, err
	}
	noop := func() error { return nil }

	switch backend {
	case enums.DraftBackendMemory:
		return Backend{Store: NewMemoryStore(time.Now), Close: noop}, nil

	case enums.DraftBackendRedis:
		client, err := pkgredis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return Backend{}, fmt.Errorf("connect redis: %w", err)
		}
		store, err := NewRedisStore(client)
		if err != nil {
			_ = client.Close()
			return Backend{}, err
		}
		return Backend{Store: store, Close: client.Close}, nil

	case enums.DraftBackendDatabase:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return Backend{}, fmt.Errorf("connect database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return Backend{}, err
		}
		store, err := NewSQLStore(client.DB(), time.Now)
		if err != nil {
			_ = client.Close()
			return Backend{}, err
		}
		return Backend{Store: store, Close: client.Close}, nil
	}
	return Backend{}, fmt.Errorf("unsupported draft backend %q", backend)
}
