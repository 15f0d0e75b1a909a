package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assessment holds a multiple-choice question set for one course. The
// question set is stored as an encoded JSON blob (see the questionset
// package); MaxScore is a denormalized copy of the question count and
// the decoded count is authoritative whenever the two disagree.
type Assessment struct {
	ID        string         `json:"assessmentId" gorm:"primaryKey;size:36"`
	Title     string         `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	CourseID  string         `json:"courseId" gorm:"not null;size:36;index" validate:"required"`
	Questions datatypes.JSON `json:"questions" gorm:"type:jsonb;not null"`
	MaxScore  int            `json:"maxScore" gorm:"not null" validate:"min=0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Course  Course   `json:"course" gorm:"foreignKey:CourseID"`
	Results []Result `json:"results" gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE"`
}

func (Assessment) TableName() string {
	return "assessments"
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
