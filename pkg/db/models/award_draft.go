package models

import "time"

// AwardDraft stores one in-progress award wizard as an opaque JSON payload.
type AwardDraft struct {
	Key       string     `gorm:"column:draft_key;type:varchar(128);primaryKey"`
	Payload   string     `gorm:"column:payload;type:text;not null"`
	SavedAt   time.Time  `gorm:"column:saved_at;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
}

func (AwardDraft) TableName() string {
	return "award_drafts"
}

// Expired reports whether the draft has passed its expiry at now.
func (d AwardDraft) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && !now.Before(*d.ExpiresAt)
}
