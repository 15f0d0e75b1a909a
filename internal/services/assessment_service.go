package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edusync/course-service/internal/events"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/questionset"
	"github.com/edusync/course-service/internal/repositories"
	"github.com/edusync/course-service/internal/validator"
	"gorm.io/datatypes"
)

// AssessmentService manages assessments and their question sets.
type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest, instructorID string) (*AssessmentResponse, error)
	Update(ctx context.Context, id string, req *UpdateAssessmentRequest, instructorID string) (*AssessmentResponse, error)
	Delete(ctx context.Context, id string, instructorID string) error
	GetByID(ctx context.Context, id string) (*AssessmentResponse, error)
	GetByCourse(ctx context.Context, courseID string) ([]*AssessmentResponse, error)
	GetQuestions(ctx context.Context, id string) ([]questionset.Question, error)
}

type assessmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher
}

func NewAssessmentService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.Publisher,
) AssessmentService {
	return &assessmentService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// ===== REQUEST/RESPONSE TYPES =====

type CreateAssessmentRequest struct {
	CourseID  string                 `json:"courseId" validate:"required"`
	Title     string                 `json:"title" validate:"required,max=200"`
	Questions []questionset.Question `json:"questions" validate:"required,min=1"`
}

type UpdateAssessmentRequest struct {
	Title     *string                `json:"title" validate:"omitempty,max=200"`
	Questions []questionset.Question `json:"questions" validate:"omitempty,min=1"`
}

type AssessmentResponse struct {
	ID        string                 `json:"assessmentId"`
	CourseID  string                 `json:"courseId"`
	Title     string                 `json:"title"`
	Questions []questionset.Question `json:"questions"`
	MaxScore  int                    `json:"maxScore"`
}

// ===== CORE ASSESSMENT OPERATIONS =====

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest, instructorID string) (*AssessmentResponse, error) {
	s.logger.Info("Creating assessment",
		"course_id", req.CourseID,
		"instructor_id", instructorID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	course, err := s.repo.Course().GetByID(ctx, req.CourseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.InstructorID != instructorID {
		return nil, NewPermissionError(instructorID, course.ID, "course", "create assessment", "not the course instructor")
	}

	blob, err := questionset.Encode(req.Questions)
	if err != nil {
		return nil, err
	}

	assessment := &models.Assessment{
		CourseID:  req.CourseID,
		Title:     req.Title,
		Questions: datatypes.JSON(blob),
		MaxScore:  len(req.Questions),
	}
	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.publishAssessmentEvent(ctx, events.NewAssessmentCreatedEvent, assessment)

	s.logger.Info("Assessment created",
		"assessment_id", assessment.ID,
		"course_id", assessment.CourseID,
		"max_score", assessment.MaxScore)

	return toAssessmentResponse(assessment, req.Questions), nil
}

// Update edits an assessment. Question sets are frozen once any attempt has
// been recorded against them; grading history must stay interpretable.
func (s *assessmentService) Update(ctx context.Context, id string, req *UpdateAssessmentRequest, instructorID string) (*AssessmentResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.Course.InstructorID != instructorID {
		return nil, NewPermissionError(instructorID, id, "assessment", "update", "not the course instructor")
	}

	if req.Title != nil {
		assessment.Title = *req.Title
	}

	if req.Questions != nil {
		attempts, err := s.repo.Result().CountByAssessment(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count attempts: %w", err)
		}
		if attempts > 0 {
			return nil, ErrAssessmentHasAttempts
		}

		blob, err := questionset.Encode(req.Questions)
		if err != nil {
			return nil, err
		}
		assessment.Questions = datatypes.JSON(blob)
		assessment.MaxScore = len(req.Questions)
	}

	if err := s.repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	s.publishAssessmentEvent(ctx, events.NewAssessmentUpdatedEvent, assessment)

	questions, err := questionset.Decode(assessment.Questions)
	if err != nil {
		return nil, err
	}
	return toAssessmentResponse(assessment, questions), nil
}

func (s *assessmentService) Delete(ctx context.Context, id string, instructorID string) error {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.Course.InstructorID != instructorID {
		return NewPermissionError(instructorID, id, "assessment", "delete", "not the course instructor")
	}

	if err := s.repo.Assessment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	s.logger.Info("Assessment deleted", "assessment_id", id)
	return nil
}

func (s *assessmentService) GetByID(ctx context.Context, id string) (*AssessmentResponse, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	questions, err := questionset.Decode(assessment.Questions)
	if err != nil {
		return nil, err
	}
	return toAssessmentResponse(assessment, questions), nil
}

func (s *assessmentService) GetByCourse(ctx context.Context, courseID string) ([]*AssessmentResponse, error) {
	assessments, err := s.repo.Assessment().GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	responses := make([]*AssessmentResponse, 0, len(assessments))
	for _, assessment := range assessments {
		questions, err := questionset.Decode(assessment.Questions)
		if err != nil {
			s.logger.Error("Skipping assessment with undecodable question set",
				"assessment_id", assessment.ID,
				"error", err)
			continue
		}
		responses = append(responses, toAssessmentResponse(assessment, questions))
	}
	return responses, nil
}

// GetQuestions returns the decoded question set for delivery to a student.
func (s *assessmentService) GetQuestions(ctx context.Context, id string) ([]questionset.Question, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return questionset.Decode(assessment.Questions)
}

func toAssessmentResponse(assessment *models.Assessment, questions []questionset.Question) *AssessmentResponse {
	return &AssessmentResponse{
		ID:        assessment.ID,
		CourseID:  assessment.CourseID,
		Title:     assessment.Title,
		Questions: questions,
		MaxScore:  len(questions),
	}
}

func (s *assessmentService) publishAssessmentEvent(ctx context.Context, factory func(events.AssessmentChangedEvent) *events.Event, assessment *models.Assessment) {
	if s.publisher == nil {
		return
	}
	event := factory(events.AssessmentChangedEvent{
		AssessmentID: assessment.ID,
		CourseID:     assessment.CourseID,
		Title:        assessment.Title,
		MaxScore:     assessment.MaxScore,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish assessment event",
			"assessment_id", assessment.ID,
			"event_type", event.Type,
			"error", err)
	}
}
