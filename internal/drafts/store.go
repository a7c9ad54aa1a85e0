// Package drafts saves award wizard progress behind a swappable key/value backend.
package drafts

import (
	"context"
	"time"
)

const keyPrefix = "award-draft-"

// Store is a blob store keyed by string. A zero ttl never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Key is the storage key of an award's draft.
func Key(awardID string) string {
	return keyPrefix + awardID
}
