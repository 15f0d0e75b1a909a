package postgres

import (
	"context"

	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
	"gorm.io/gorm"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (e *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.CourseEnrollment) error {
	// TranslateError is enabled globally on the gorm.Config (pkg/gorm.go), so
	// the (student, course) unique index surfaces as gorm.ErrDuplicatedKey
	// instead of a raw pgconn error.
	return e.db.WithContext(ctx).Create(enrollment).Error
}

func (e *EnrollmentPostgreSQL) GetByStudent(ctx context.Context, studentID string) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	if err := e.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("enrollment_date DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (e *EnrollmentPostgreSQL) GetByCourse(ctx context.Context, courseID string) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	if err := e.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("enrollment_date DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (e *EnrollmentPostgreSQL) GetByCourseIDs(ctx context.Context, courseIDs []string) ([]*models.CourseEnrollment, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var enrollments []*models.CourseEnrollment
	if err := e.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("enrollment_date DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (e *EnrollmentPostgreSQL) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	var count int64
	if err := e.db.WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
