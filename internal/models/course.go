package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID           string  `json:"courseId" gorm:"primaryKey;size:36"`
	Title        string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description  *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	InstructorID string  `json:"instructorId" gorm:"not null;size:36;index" validate:"required"`
	MediaURL     *string `json:"mediaUrl" gorm:"size:500" validate:"omitempty,url,max=500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Instructor  User             `json:"instructor" gorm:"foreignKey:InstructorID"`
	Materials   []CourseMaterial `json:"materials" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Assessments []Assessment     `json:"assessments" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CourseMaterial is an uploaded resource attached to a course. The file
// itself lives in external blob storage; only the URL is kept here.
type CourseMaterial struct {
	ID       string `json:"materialId" gorm:"primaryKey;size:36"`
	CourseID string `json:"courseId" gorm:"not null;size:36;index" validate:"required"`
	Title    string `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	URL      string `json:"url" gorm:"not null;size:500" validate:"required,url,max=500"`

	UploadedAt time.Time `json:"uploadedAt"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}

func (m *CourseMaterial) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.UploadedAt.IsZero() {
		m.UploadedAt = time.Now()
	}
	return nil
}
