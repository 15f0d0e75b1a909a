package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result records one graded attempt. Rows are insert-only: nothing in
// normal operation updates or deletes a Result, and repeated attempts by
// the same student each create a new row.
type Result struct {
	ID           string    `json:"resultId" gorm:"primaryKey;size:36"`
	AssessmentID string    `json:"assessmentId" gorm:"not null;size:36;index" validate:"required"`
	UserID       string    `json:"userId" gorm:"not null;size:36;index" validate:"required"`
	Score        int       `json:"score" gorm:"not null" validate:"min=0"`
	AttemptDate  time.Time `json:"attemptDate" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Assessment Assessment `json:"assessment" gorm:"foreignKey:AssessmentID"`
	User       User       `json:"user" gorm:"foreignKey:UserID"`
}

func (Result) TableName() string {
	return "results"
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.AttemptDate.IsZero() {
		r.AttemptDate = time.Now()
	}
	return nil
}
