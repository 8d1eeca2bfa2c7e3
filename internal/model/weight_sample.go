package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeightSample is a single day's weight reading for a user. The composite
// unique index on (user_id, date) guarantees at most one row per calendar
// day even under concurrent entries.
type WeightSample struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_user_day,priority:1"`
	WeightLbs int       `json:"weight_lbs" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"not null;uniqueIndex:idx_user_day,priority:2"` // midnight-truncated
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (w *WeightSample) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// DayOf truncates a timestamp to its calendar day in local time, the key
// weight samples are stored and looked up under.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
