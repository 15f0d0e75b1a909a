package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edusync/course-service/internal/events"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
)

// EnrollmentService manages course enrollments.
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID string) (*models.CourseEnrollment, error)
	GetStudentCourses(ctx context.Context, studentID string) ([]*models.Course, error)
	GetCourseEnrollments(ctx context.Context, courseID, instructorID string) ([]*models.CourseEnrollment, error)
	IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error)
}

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.Publisher
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, publisher events.Publisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*models.CourseEnrollment, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrollment := &models.CourseEnrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: time.Now(),
	}
	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if s.publisher != nil {
		event := events.NewStudentEnrolledEvent(events.StudentEnrolledEvent{
			EnrollmentID:   enrollment.ID,
			StudentID:      studentID,
			CourseID:       courseID,
			CourseTitle:    course.Title,
			EnrollmentDate: enrollment.EnrollmentDate,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish enrollment event",
				"enrollment_id", enrollment.ID,
				"error", err)
		}
	}

	s.logger.Info("Student enrolled",
		"student_id", studentID,
		"course_id", courseID)
	return enrollment, nil
}

func (s *enrollmentService) GetStudentCourses(ctx context.Context, studentID string) ([]*models.Course, error) {
	enrollments, err := s.repo.Enrollment().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	courses := make([]*models.Course, 0, len(enrollments))
	for _, enrollment := range enrollments {
		course, err := s.repo.Course().GetByID(ctx, enrollment.CourseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				continue
			}
			return nil, fmt.Errorf("failed to get course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// GetCourseEnrollments lists a course's enrollments, newest first. Only the
// owning instructor may read them.
func (s *enrollmentService) GetCourseEnrollments(ctx context.Context, courseID, instructorID string) ([]*models.CourseEnrollment, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.InstructorID != instructorID {
		return nil, NewPermissionError(instructorID, courseID, "course", "list enrollments", "not the course instructor")
	}

	return s.repo.Enrollment().GetByCourse(ctx, courseID)
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	return s.repo.Enrollment().IsEnrolled(ctx, studentID, courseID)
}
