package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/edusync/course-service/internal/grading"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/questionset"
	"github.com/edusync/course-service/internal/repositories"
)

const (
	unknownAssessmentTitle = "Unknown Assessment"
	unknownCourseTitle     = "Unknown Course"
)

// ProgressService builds the per-student attempt history view.
type ProgressService interface {
	GetStudentHistory(ctx context.Context, studentID string) (*StudentHistory, error)
}

type progressService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewProgressService(repo repositories.Repository, logger *slog.Logger) ProgressService {
	return &progressService{
		repo:   repo,
		logger: logger,
	}
}

// ===== DATA STRUCTURES =====

type StudentHistory struct {
	StudentID   string         `json:"userId"`
	Entries     []HistoryEntry `json:"entries"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

type HistoryEntry struct {
	ResultID        string    `json:"resultId"`
	AssessmentID    string    `json:"assessmentId"`
	AssessmentTitle string    `json:"assessmentTitle"`
	CourseID        string    `json:"courseId,omitempty"`
	CourseTitle     string    `json:"courseTitle"`
	Score           int       `json:"score"`
	MaxScore        int       `json:"maxScore"`
	Percentage      int       `json:"percentage"`
	Status          string    `json:"status"`
	AttemptDate     time.Time `json:"attemptDate"`
}

// GetStudentHistory returns every recorded attempt for a student, newest
// first. Attempts whose assessment or course has since been deleted are kept
// with placeholder titles rather than dropped.
func (s *progressService) GetStudentHistory(ctx context.Context, studentID string) (*StudentHistory, error) {
	results, err := s.repo.Result().GetByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	assessments, err := s.lookupAssessments(ctx, results)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(results))
	for _, result := range results {
		entries = append(entries, s.buildEntry(result, assessments[result.AssessmentID]))
	}

	// Repository ordering is already newest-first; re-sorting keeps the
	// contract independent of the storage layer.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AttemptDate.After(entries[j].AttemptDate)
	})

	return &StudentHistory{
		StudentID:   studentID,
		Entries:     entries,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *progressService) lookupAssessments(ctx context.Context, results []*models.Result) (map[string]*models.Assessment, error) {
	seen := make(map[string]struct{}, len(results))
	ids := make([]string, 0, len(results))
	for _, result := range results {
		if _, ok := seen[result.AssessmentID]; ok {
			continue
		}
		seen[result.AssessmentID] = struct{}{}
		ids = append(ids, result.AssessmentID)
	}

	assessments, err := s.repo.Assessment().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessments: %w", err)
	}

	byID := make(map[string]*models.Assessment, len(assessments))
	for _, assessment := range assessments {
		byID[assessment.ID] = assessment
	}
	return byID, nil
}

func (s *progressService) buildEntry(result *models.Result, assessment *models.Assessment) HistoryEntry {
	entry := HistoryEntry{
		ResultID:        result.ID,
		AssessmentID:    result.AssessmentID,
		AssessmentTitle: unknownAssessmentTitle,
		CourseTitle:     unknownCourseTitle,
		Score:           result.Score,
		AttemptDate:     result.AttemptDate,
		Status:          string(grading.StatusFailed),
	}

	if assessment == nil {
		// Orphaned attempt: the raw score is all that survives.
		return entry
	}

	entry.AssessmentTitle = assessment.Title
	entry.CourseID = assessment.CourseID
	if assessment.Course.Title != "" {
		entry.CourseTitle = assessment.Course.Title
	}

	entry.MaxScore = questionset.MaxScore(assessment.Questions)
	entry.Percentage = grading.Percentage(result.Score, entry.MaxScore)
	if entry.Percentage >= grading.PassThreshold {
		entry.Status = string(grading.StatusPassed)
	}
	return entry
}
