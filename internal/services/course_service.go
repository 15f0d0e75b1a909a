package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
	"github.com/edusync/course-service/internal/validator"
)

// CourseService manages courses and their materials.
type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, instructorID string) (*models.Course, error)
	Update(ctx context.Context, id string, req *UpdateCourseRequest, instructorID string) (*models.Course, error)
	Delete(ctx context.Context, id string, instructorID string) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error)
	List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error)
	AddMaterial(ctx context.Context, courseID string, req *AddMaterialRequest, instructorID string) (*models.CourseMaterial, error)
}

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// ===== REQUEST TYPES =====

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	MediaURL    *string `json:"mediaUrl" validate:"omitempty,url"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	MediaURL    *string `json:"mediaUrl" validate:"omitempty,url"`
}

type AddMaterialRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	URL   string `json:"url" validate:"required,url"`
}

// ===== CORE COURSE OPERATIONS =====

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, instructorID string) (*models.Course, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		MediaURL:     req.MediaURL,
		InstructorID: instructorID,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "instructor_id", instructorID)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id string, req *UpdateCourseRequest, instructorID string) (*models.Course, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	course, err := s.getOwned(ctx, id, instructorID, "update")
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.MediaURL != nil {
		course.MediaURL = req.MediaURL
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id string, instructorID string) error {
	if _, err := s.getOwned(ctx, id, instructorID, "delete"); err != nil {
		return err
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("Course deleted", "course_id", id)
	return nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) GetByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	courses, err := s.repo.Course().GetByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	return s.repo.Course().List(ctx, filters)
}

func (s *courseService) AddMaterial(ctx context.Context, courseID string, req *AddMaterialRequest, instructorID string) (*models.CourseMaterial, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	course, err := s.getOwned(ctx, courseID, instructorID, "add material")
	if err != nil {
		return nil, err
	}

	material := &models.CourseMaterial{
		CourseID:   course.ID,
		Title:      req.Title,
		URL:        req.URL,
		UploadedAt: time.Now(),
	}
	course.Materials = append(course.Materials, *material)
	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to add material: %w", err)
	}

	added := course.Materials[len(course.Materials)-1]
	return &added, nil
}

func (s *courseService) getOwned(ctx context.Context, id, instructorID, action string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.InstructorID != instructorID {
		return nil, NewPermissionError(instructorID, id, "course", action, "not the course instructor")
	}
	return course, nil
}
