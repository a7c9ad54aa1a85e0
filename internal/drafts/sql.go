package drafts

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/procureflow-backend/pkg/db"
	"github.com/angelmondragon/procureflow-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps drafts in the award_drafts table. Expired rows are removed
// lazily when read.
type SQLStore struct {
	conn *gorm.DB
	now  func() time.Time
}

func NewSQLStore(conn *gorm.DB, now func() time.Time) (*SQLStore, error) {
	if conn == nil {
		return nil, fmt.Errorf("database connection required")
	}
	if now == nil {
		now = time.Now
	}
	return &SQLStore{conn: conn, now: now}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row models.AwardDraft
	err := s.conn.WithContext(ctx).Where("draft_key = ?", key).Take(&row).Error
	if db.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load draft %s: %w", key, err)
	}
	if row.Expired(s.now().UTC()) {
		if err := s.Delete(ctx, key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return []byte(row.Payload), true, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now().UTC()
	row := models.AwardDraft{
		Key:     key,
		Payload: string(value),
		SavedAt: now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		row.ExpiresAt = &expires
	}
	err := s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "draft_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "saved_at", "expires_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save draft %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := s.conn.WithContext(ctx).Where("draft_key = ?", key).Delete(&models.AwardDraft{}).Error; err != nil {
		return fmt.Errorf("delete draft %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
