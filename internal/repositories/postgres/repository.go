package postgres

import (
	"github.com/edusync/course-service/internal/repositories"
	"gorm.io/gorm"
)

type postgresRepository struct {
	course     repositories.CourseRepository
	assessment repositories.AssessmentRepository
	result     repositories.ResultRepository
	enrollment repositories.EnrollmentRepository
}

// NewRepository wires all gorm-backed repositories over one *gorm.DB.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &postgresRepository{
		course:     NewCoursePostgreSQL(db),
		assessment: NewAssessmentPostgreSQL(db),
		result:     NewResultPostgreSQL(db),
		enrollment: NewEnrollmentPostgreSQL(db),
	}
}

func (r *postgresRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *postgresRepository) Assessment() repositories.AssessmentRepository {
	return r.assessment
}

func (r *postgresRepository) Result() repositories.ResultRepository {
	return r.result
}

func (r *postgresRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollment
}
