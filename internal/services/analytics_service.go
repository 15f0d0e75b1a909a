package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/edusync/course-service/internal/cache"
	"github.com/edusync/course-service/internal/grading"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/questionset"
	"github.com/edusync/course-service/internal/repositories"
)

const (
	analyticsCacheTTL  = 5 * time.Minute
	recentEnrollments  = 5
	unknownStudentName = "Unknown Student"
)

// AnalyticsService builds the instructor-facing aggregate views.
type AnalyticsService interface {
	GetInstructorAnalytics(ctx context.Context, instructorID string) (*InstructorAnalytics, error)
}

type analyticsService struct {
	repo   repositories.Repository
	users  repositories.UserDirectory
	cache  cache.CacheService
	logger *slog.Logger
}

func NewAnalyticsService(
	repo repositories.Repository,
	users repositories.UserDirectory,
	cacheService cache.CacheService,
	logger *slog.Logger,
) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		users:  users,
		cache:  cacheService,
		logger: logger,
	}
}

// ===== DATA STRUCTURES =====

type InstructorAnalytics struct {
	InstructorID string                `json:"instructorId"`
	Overall      OverallStats          `json:"overall"`
	Assessments  []AssessmentStats     `json:"assessments"`
	Courses      []CourseStats         `json:"courses"`
	Enrollments  []EnrollmentAnalytics `json:"enrollments"`
	GeneratedAt  time.Time             `json:"generatedAt"`
}

type OverallStats struct {
	TotalStudents    int     `json:"totalStudents"`
	AverageScore     float64 `json:"averageScore"`
	CompletionRate   int     `json:"completionRate"`
	AssessmentsTaken int     `json:"assessmentsTaken"`
}

type AssessmentStats struct {
	AssessmentID      string  `json:"assessmentId"`
	Title             string  `json:"title"`
	CourseID          string  `json:"courseId"`
	MaxScore          int     `json:"maxScore"`
	Attempts          int     `json:"attempts"`
	AverageScore      float64 `json:"averageScore"`
	AveragePercentage int     `json:"averagePercentage"`
	PassRate          int     `json:"passRate"`
}

type CourseStats struct {
	CourseID       string `json:"courseId"`
	Title          string `json:"title"`
	Students       int    `json:"students"`
	Assessments    int    `json:"assessments"`
	Attempts       int    `json:"attempts"`
	CompletionRate int    `json:"completionRate"`
}

type EnrollmentAnalytics struct {
	CourseID          string             `json:"courseId"`
	CourseTitle       string             `json:"courseTitle"`
	TotalEnrollments  int                `json:"totalEnrollments"`
	RecentEnrollments []RecentEnrollment `json:"recentEnrollments"`
}

type RecentEnrollment struct {
	StudentID      string    `json:"studentId"`
	StudentName    string    `json:"studentName"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// GetInstructorAnalytics aggregates attempts, enrollments and assessments
// across every course the instructor owns. The view is cached; a fresh
// attempt invalidates it.
func (s *analyticsService) GetInstructorAnalytics(ctx context.Context, instructorID string) (*InstructorAnalytics, error) {
	cacheKey := cache.InstructorAnalyticsKey(instructorID)
	if s.cache != nil {
		var cached InstructorAnalytics
		err := s.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			s.logger.Debug("Analytics cache hit", "instructor_id", instructorID)
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Analytics cache read failed", "instructor_id", instructorID, "error", err)
		}
	}

	analytics, err := s.build(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, analytics, analyticsCacheTTL); err != nil {
			s.logger.Warn("Analytics cache write failed", "instructor_id", instructorID, "error", err)
		}
	}
	return analytics, nil
}

func (s *analyticsService) build(ctx context.Context, instructorID string) (*InstructorAnalytics, error) {
	courses, err := s.repo.Course().GetByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courseIDs := make([]string, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	assessments, err := s.repo.Assessment().GetByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	enrollments, err := s.repo.Enrollment().GetByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	assessmentIDs := make([]string, 0, len(assessments))
	for _, assessment := range assessments {
		assessmentIDs = append(assessmentIDs, assessment.ID)
	}

	results, err := s.repo.Result().GetByAssessmentIDs(ctx, assessmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	analytics := &InstructorAnalytics{
		InstructorID: instructorID,
		Overall:      buildOverallStats(enrollments, assessments, results),
		Assessments:  buildAssessmentStats(assessments, results),
		Courses:      buildCourseStats(courses, assessments, enrollments, results),
		GeneratedAt:  time.Now(),
	}

	analytics.Enrollments, err = s.buildEnrollmentAnalytics(ctx, courses, enrollments)
	if err != nil {
		return nil, err
	}

	return analytics, nil
}

// buildOverallStats computes the headline numbers. Repeated attempts by the
// same student all count; completion rate is attempts over the student by
// assessment matrix.
func buildOverallStats(enrollments []*models.CourseEnrollment, assessments []*models.Assessment, results []*models.Result) OverallStats {
	students := make(map[string]struct{})
	for _, enrollment := range enrollments {
		students[enrollment.StudentID] = struct{}{}
	}

	stats := OverallStats{
		TotalStudents:    len(students),
		AssessmentsTaken: len(results),
	}

	if len(results) > 0 {
		var totalScore int
		for _, result := range results {
			totalScore += result.Score
		}
		stats.AverageScore = round2(float64(totalScore) / float64(len(results)))
	}

	possible := len(students) * len(assessments)
	if possible > 0 {
		stats.CompletionRate = int(math.Round(float64(len(results)) / float64(possible) * 100))
	}

	return stats
}

func buildAssessmentStats(assessments []*models.Assessment, results []*models.Result) []AssessmentStats {
	resultsByAssessment := make(map[string][]*models.Result)
	for _, result := range results {
		resultsByAssessment[result.AssessmentID] = append(resultsByAssessment[result.AssessmentID], result)
	}

	stats := make([]AssessmentStats, 0, len(assessments))
	for _, assessment := range assessments {
		maxScore := questionset.MaxScore(assessment.Questions)
		item := AssessmentStats{
			AssessmentID: assessment.ID,
			Title:        assessment.Title,
			CourseID:     assessment.CourseID,
			MaxScore:     maxScore,
		}

		attempts := resultsByAssessment[assessment.ID]
		item.Attempts = len(attempts)
		if len(attempts) > 0 {
			var totalScore, passed int
			for _, attempt := range attempts {
				totalScore += attempt.Score
				if grading.Percentage(attempt.Score, maxScore) >= grading.PassThreshold {
					passed++
				}
			}
			avgScore := float64(totalScore) / float64(len(attempts))
			item.AverageScore = round2(avgScore)
			// Percentage of the unrounded mean score, not the mean of
			// per-attempt percentages: rounding each attempt first skews
			// the aggregate.
			if maxScore > 0 {
				item.AveragePercentage = int(math.Round(avgScore / float64(maxScore) * 100))
			}
			item.PassRate = int(math.Round(float64(passed) / float64(len(attempts)) * 100))
		}

		stats = append(stats, item)
	}
	return stats
}

func buildCourseStats(courses []*models.Course, assessments []*models.Assessment, enrollments []*models.CourseEnrollment, results []*models.Result) []CourseStats {
	assessmentCourse := make(map[string]string, len(assessments))
	assessmentsByCourse := make(map[string]int)
	for _, assessment := range assessments {
		assessmentCourse[assessment.ID] = assessment.CourseID
		assessmentsByCourse[assessment.CourseID]++
	}

	studentsByCourse := make(map[string]int)
	for _, enrollment := range enrollments {
		studentsByCourse[enrollment.CourseID]++
	}

	attemptsByCourse := make(map[string]int)
	for _, result := range results {
		if courseID, ok := assessmentCourse[result.AssessmentID]; ok {
			attemptsByCourse[courseID]++
		}
	}

	stats := make([]CourseStats, 0, len(courses))
	for _, course := range courses {
		item := CourseStats{
			CourseID:    course.ID,
			Title:       course.Title,
			Students:    studentsByCourse[course.ID],
			Assessments: assessmentsByCourse[course.ID],
			Attempts:    attemptsByCourse[course.ID],
		}
		possible := item.Students * item.Assessments
		if possible > 0 {
			item.CompletionRate = int(math.Round(float64(item.Attempts) / float64(possible) * 100))
		}
		stats = append(stats, item)
	}
	return stats
}

// buildEnrollmentAnalytics lists each course's enrollment count plus the most
// recent sign-ups with resolved names. A student the directory no longer
// knows keeps their row with a placeholder name.
func (s *analyticsService) buildEnrollmentAnalytics(ctx context.Context, courses []*models.Course, enrollments []*models.CourseEnrollment) ([]EnrollmentAnalytics, error) {
	byCourse := make(map[string][]*models.CourseEnrollment)
	for _, enrollment := range enrollments {
		byCourse[enrollment.CourseID] = append(byCourse[enrollment.CourseID], enrollment)
	}

	studentIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, courseEnrollments := range byCourse {
		for i, enrollment := range courseEnrollments {
			if i >= recentEnrollments {
				break
			}
			if _, ok := seen[enrollment.StudentID]; ok {
				continue
			}
			seen[enrollment.StudentID] = struct{}{}
			studentIDs = append(studentIDs, enrollment.StudentID)
		}
	}

	var names map[string]*models.User
	if s.users != nil && len(studentIDs) > 0 {
		var err error
		names, err = s.users.GetByIDs(ctx, studentIDs)
		if err != nil {
			// Directory outage degrades names, not the whole view.
			s.logger.Warn("User directory lookup failed", "error", err)
			names = nil
		}
	}

	analytics := make([]EnrollmentAnalytics, 0, len(courses))
	for _, course := range courses {
		courseEnrollments := byCourse[course.ID]
		item := EnrollmentAnalytics{
			CourseID:          course.ID,
			CourseTitle:       course.Title,
			TotalEnrollments:  len(courseEnrollments),
			RecentEnrollments: make([]RecentEnrollment, 0, recentEnrollments),
		}

		// Enrollments arrive newest-first from the repository.
		for i, enrollment := range courseEnrollments {
			if i >= recentEnrollments {
				break
			}
			name := unknownStudentName
			if user, ok := names[enrollment.StudentID]; ok && user != nil {
				name = user.Name
			}
			item.RecentEnrollments = append(item.RecentEnrollments, RecentEnrollment{
				StudentID:      enrollment.StudentID,
				StudentName:    name,
				EnrollmentDate: enrollment.EnrollmentDate,
			})
		}

		analytics = append(analytics, item)
	}
	return analytics, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
