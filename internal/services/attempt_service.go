package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edusync/course-service/internal/cache"
	"github.com/edusync/course-service/internal/events"
	"github.com/edusync/course-service/internal/grading"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/questionset"
	"github.com/edusync/course-service/internal/repositories"
	"github.com/edusync/course-service/internal/validator"
)

// AttemptService grades submissions and records attempts.
type AttemptService interface {
	GradeSubmission(ctx context.Context, req *SubmitAttemptRequest) (*GradeSubmissionResponse, error)
	GetResult(ctx context.Context, resultID string) (*GradeSubmissionResponse, error)
	GetAssessmentResults(ctx context.Context, assessmentID, instructorID string) ([]*GradeSubmissionResponse, error)
}

type attemptService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.Publisher
	cache     cache.CacheService
}

func NewAttemptService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.Publisher,
	cacheService cache.CacheService,
) AttemptService {
	return &attemptService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
		cache:     cacheService,
	}
}

// ===== REQUEST/RESPONSE TYPES =====

type SubmitAttemptRequest struct {
	AssessmentID string `json:"assessmentId" validate:"required"`
	StudentID    string `json:"userId" validate:"required"`
	Answers      []int  `json:"answers"`
}

type GradeSubmissionResponse struct {
	ResultID     string    `json:"resultId"`
	AssessmentID string    `json:"assessmentId"`
	StudentID    string    `json:"userId"`
	Score        int       `json:"score"`
	MaxScore     int       `json:"maxScore"`
	Percentage   int       `json:"percentage"`
	Status       string    `json:"status"`
	AttemptDate  time.Time `json:"attemptDate"`
}

// ===== CORE ATTEMPT OPERATIONS =====

// GradeSubmission grades a student's answers against the stored question set
// and persists the attempt. Repeated attempts are allowed; every graded
// submission produces a new record.
func (s *attemptService) GradeSubmission(ctx context.Context, req *SubmitAttemptRequest) (*GradeSubmissionResponse, error) {
	s.logger.Info("Grading submission",
		"assessment_id", req.AssessmentID,
		"student_id", req.StudentID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, req.AssessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	enrolled, err := s.repo.Enrollment().IsEnrolled(ctx, req.StudentID, assessment.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	questions, err := questionset.Decode(assessment.Questions)
	if err != nil {
		s.logger.Error("Stored question set failed to decode",
			"assessment_id", assessment.ID,
			"error", err)
		return nil, err
	}

	graded, err := grading.Grade(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		AssessmentID: assessment.ID,
		UserID:       req.StudentID,
		Score:        graded.Score,
		AttemptDate:  time.Now(),
	}
	if err := s.repo.Result().Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	s.publishAttemptGraded(ctx, assessment, result, graded)
	s.invalidateAnalytics(ctx, assessment)

	s.logger.Info("Submission graded",
		"result_id", result.ID,
		"assessment_id", assessment.ID,
		"student_id", req.StudentID,
		"score", graded.Score,
		"max_score", graded.MaxScore,
		"status", graded.Status)

	return &GradeSubmissionResponse{
		ResultID:     result.ID,
		AssessmentID: assessment.ID,
		StudentID:    req.StudentID,
		Score:        graded.Score,
		MaxScore:     graded.MaxScore,
		Percentage:   graded.Percentage,
		Status:       string(graded.Status),
		AttemptDate:  result.AttemptDate,
	}, nil
}

func (s *attemptService) GetResult(ctx context.Context, resultID string) (*GradeSubmissionResponse, error) {
	result, err := s.repo.Result().GetByID(ctx, resultID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, result.AssessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	return s.toResponse(result, assessment), nil
}

// GetAssessmentResults lists every recorded attempt for an assessment. Only
// the owning instructor may read them.
func (s *attemptService) GetAssessmentResults(ctx context.Context, assessmentID, instructorID string) ([]*GradeSubmissionResponse, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if assessment.Course.InstructorID != instructorID {
		return nil, NewPermissionError(instructorID, assessmentID, "assessment", "read results", "not the course instructor")
	}

	results, err := s.repo.Result().GetByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	responses := make([]*GradeSubmissionResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, s.toResponse(result, assessment))
	}
	return responses, nil
}

// toResponse recomputes the derived fields from the stored score. The
// question set decoded from storage is the authority on max score.
func (s *attemptService) toResponse(result *models.Result, assessment *models.Assessment) *GradeSubmissionResponse {
	maxScore := questionset.MaxScore(assessment.Questions)
	percentage := grading.Percentage(result.Score, maxScore)
	status := grading.StatusFailed
	if percentage >= grading.PassThreshold {
		status = grading.StatusPassed
	}

	return &GradeSubmissionResponse{
		ResultID:     result.ID,
		AssessmentID: result.AssessmentID,
		StudentID:    result.UserID,
		Score:        result.Score,
		MaxScore:     maxScore,
		Percentage:   percentage,
		Status:       string(status),
		AttemptDate:  result.AttemptDate,
	}
}

func (s *attemptService) publishAttemptGraded(ctx context.Context, assessment *models.Assessment, result *models.Result, graded grading.Result) {
	if s.publisher == nil {
		return
	}

	event := events.NewAttemptGradedEvent(events.AttemptGradedEvent{
		ResultID:        result.ID,
		AssessmentID:    assessment.ID,
		AssessmentTitle: assessment.Title,
		CourseID:        assessment.CourseID,
		StudentID:       result.UserID,
		Score:           graded.Score,
		MaxScore:        graded.MaxScore,
		Percentage:      graded.Percentage,
		Status:          string(graded.Status),
		AttemptDate:     result.AttemptDate,
	})

	// Grading already succeeded; a publish failure must not fail the request.
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish attempt graded event",
			"result_id", result.ID,
			"error", err)
	}
}

func (s *attemptService) invalidateAnalytics(ctx context.Context, assessment *models.Assessment) {
	if s.cache == nil {
		return
	}

	instructorID := assessment.Course.InstructorID
	if instructorID == "" {
		return
	}

	key := cache.InstructorAnalyticsKey(instructorID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to invalidate analytics cache",
			"instructor_id", instructorID,
			"error", err)
	}
}
