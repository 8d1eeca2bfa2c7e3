package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender is the biological sex used by the metric formulas.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User represents a registered account with its health profile.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:15;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName    string    `json:"first_name" gorm:"size:25;not null"`
	LastName     string    `json:"last_name" gorm:"size:25;not null"`
	Birthday     time.Time `json:"birthday" gorm:"not null"`
	HeightIn     int       `json:"height_in" gorm:"default:0"` // total inches
	Gender       Gender    `json:"gender" gorm:"type:varchar(6);not null"`
	InitialHW    bool      `json:"initial_hw" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Weights []WeightSample `json:"weights,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name for display and email greetings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
