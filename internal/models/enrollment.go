package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseEnrollment grants a student access to a course's assessments.
// A student may enroll in a course at most once.
type CourseEnrollment struct {
	ID             string    `json:"enrollmentId" gorm:"primaryKey;size:36"`
	StudentID      string    `json:"studentId" gorm:"not null;size:36;index;uniqueIndex:idx_enrollment_student_course" validate:"required"`
	CourseID       string    `json:"courseId" gorm:"not null;size:36;uniqueIndex:idx_enrollment_student_course" validate:"required"`
	EnrollmentDate time.Time `json:"enrollmentDate" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Student User   `json:"student" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

func (e *CourseEnrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now()
	}
	return nil
}
