package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edusync/course-service/internal/grading"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/questionset"
	"github.com/edusync/course-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService produces spreadsheet exports for instructors.
type ExportService interface {
	ExportAssessmentResults(ctx context.Context, assessmentID, instructorID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	users  repositories.UserDirectory
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, users repositories.UserDirectory, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// ExportAssessmentResults renders every recorded attempt for an assessment
// as an xlsx workbook. Only the owning instructor may export.
func (s *exportService) ExportAssessmentResults(ctx context.Context, assessmentID, instructorID string) ([]byte, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.Course.InstructorID != instructorID {
		return nil, NewPermissionError(instructorID, assessmentID, "assessment", "export results", "not the course instructor")
	}

	results, err := s.repo.Result().GetByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment results: %w", err)
	}

	names := s.resolveNames(ctx, results)
	maxScore := questionset.MaxScore(assessment.Questions)

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Write headers
	headers := []string{
		"Student ID", "Student Name", "Score", "Max Score", "Percentage", "Status", "Attempt Date",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	// Write attempt data
	for rowIndex, result := range results {
		percentage := grading.Percentage(result.Score, maxScore)
		status := grading.StatusFailed
		if percentage >= grading.PassThreshold {
			status = grading.StatusPassed
		}

		name := unknownStudentName
		if user, ok := names[result.UserID]; ok && user != nil {
			name = user.Name
		}

		row := []interface{}{
			result.UserID,
			name,
			result.Score,
			maxScore,
			percentage,
			string(status),
			result.AttemptDate.Format(time.RFC3339),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported assessment results",
		"assessment_id", assessmentID,
		"rows", len(results))
	return buf.Bytes(), nil
}

func (s *exportService) resolveNames(ctx context.Context, results []*models.Result) map[string]*models.User {
	if s.users == nil || len(results) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(results))
	ids := make([]string, 0, len(results))
	for _, result := range results {
		if _, ok := seen[result.UserID]; ok {
			continue
		}
		seen[result.UserID] = struct{}{}
		ids = append(ids, result.UserID)
	}

	names, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("User directory lookup failed for export", "error", err)
		return nil
	}
	return names
}
