package repositories

import (
	"context"
	"time"

	"github.com/edusync/course-service/internal/models"
)

// Repository aggregates the per-entity repositories so services take one
// dependency instead of five.
type Repository interface {
	Course() CourseRepository
	Assessment() AssessmentRepository
	Result() ResultRepository
	Enrollment() EnrollmentRepository
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Assessment, error)
	GetByCourse(ctx context.Context, courseID string) ([]*models.Assessment, error)
	GetByCourseIDs(ctx context.Context, courseIDs []string) ([]*models.Assessment, error)
	List(ctx context.Context, filters AssessmentFilters) ([]*models.Assessment, int64, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id string) error
}

// ResultRepository is the attempt record store. Results are insert-only:
// there is no update, and deletion happens solely through schema-level
// cascades when a parent assessment or user is removed.
type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id string) (*models.Result, error)
	GetByUser(ctx context.Context, userID string) ([]*models.Result, error)
	GetByAssessment(ctx context.Context, assessmentID string) ([]*models.Result, error)
	GetByAssessmentIDs(ctx context.Context, assessmentIDs []string) ([]*models.Result, error)
	CountByAssessment(ctx context.Context, assessmentID string) (int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.CourseEnrollment) error
	GetByStudent(ctx context.Context, studentID string) ([]*models.CourseEnrollment, error)
	GetByCourse(ctx context.Context, courseID string) ([]*models.CourseEnrollment, error)
	GetByCourseIDs(ctx context.Context, courseIDs []string) ([]*models.CourseEnrollment, error)
	IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error)
}

// UserDirectory resolves identities from the external identity provider.
// The course service reads user data; it never owns it.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	InstructorID *string `json:"instructor_id"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
	SortBy       string  `json:"sort_by"`    // "created_at", "title"
	SortOrder    string  `json:"sort_order"` // "asc", "desc"
}

type AssessmentFilters struct {
	CourseID  *string    `json:"course_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`
	SortOrder string     `json:"sort_order"`
}
