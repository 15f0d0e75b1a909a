package services

import (
	"context"
	"testing"
	"time"

	"github.com/edusync/course-service/internal/events"
	"github.com/edusync/course-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttemptFixture(t *testing.T) (*fakeRepo, *events.MockPublisher, AttemptService) {
	t.Helper()
	repo := newFakeRepo()
	publisher := events.NewMockPublisher(testLogger())
	service := NewAttemptService(repo, testLogger(), validator.New(), publisher, nil)
	return repo, publisher, service
}

func TestGradeSubmission(t *testing.T) {
	ctx := context.Background()

	t.Run("records and grades a passing attempt", func(t *testing.T) {
		repo, publisher, service := newAttemptFixture(t)
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1, 2, 3})
		repo.addEnrollment("student-1", course.ID, time.Now())

		response, err := service.GradeSubmission(ctx, &SubmitAttemptRequest{
			AssessmentID: assessment.ID,
			StudentID:    "student-1",
			Answers:      []int{0, 1, 2, 0},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, response.Score)
		assert.Equal(t, 4, response.MaxScore)
		assert.Equal(t, 75, response.Percentage)
		assert.Equal(t, "Passed", response.Status)
		assert.NotEmpty(t, response.ResultID)
		assert.False(t, response.AttemptDate.IsZero())

		require.Len(t, repo.results, 1)
		assert.Equal(t, 3, repo.results[0].Score)

		published := publisher.PublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventAttemptGraded, published[0].Type)
	})

	t.Run("rejects answer count mismatch without recording", func(t *testing.T) {
		repo, publisher, service := newAttemptFixture(t)
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1, 2})
		repo.addEnrollment("student-1", course.ID, time.Now())

		_, err := service.GradeSubmission(ctx, &SubmitAttemptRequest{
			AssessmentID: assessment.ID,
			StudentID:    "student-1",
			Answers:      []int{0, 1},
		})
		require.ErrorIs(t, err, ErrAnswerCountMismatch)

		assert.Empty(t, repo.results)
		assert.Empty(t, publisher.PublishedEvents())
	})

	t.Run("rejects students not enrolled in the course", func(t *testing.T) {
		repo, _, service := newAttemptFixture(t)
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0})

		_, err := service.GradeSubmission(ctx, &SubmitAttemptRequest{
			AssessmentID: assessment.ID,
			StudentID:    "outsider",
			Answers:      []int{0},
		})
		require.ErrorIs(t, err, ErrNotEnrolled)
		assert.Empty(t, repo.results)
	})

	t.Run("rejects unknown assessments", func(t *testing.T) {
		_, _, service := newAttemptFixture(t)

		_, err := service.GradeSubmission(ctx, &SubmitAttemptRequest{
			AssessmentID: "missing",
			StudentID:    "student-1",
			Answers:      []int{0},
		})
		require.ErrorIs(t, err, ErrAssessmentNotFound)
	})

	t.Run("allows repeated attempts and keeps every record", func(t *testing.T) {
		repo, _, service := newAttemptFixture(t)
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1})
		repo.addEnrollment("student-1", course.ID, time.Now())

		for _, answers := range [][]int{{0, 1}, {1, 1}, {0, 0}} {
			_, err := service.GradeSubmission(ctx, &SubmitAttemptRequest{
				AssessmentID: assessment.ID,
				StudentID:    "student-1",
				Answers:      answers,
			})
			require.NoError(t, err)
		}

		assert.Len(t, repo.results, 3)
	})

	t.Run("out of range selections score zero without error", func(t *testing.T) {
		repo, _, service := newAttemptFixture(t)
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1})
		repo.addEnrollment("student-1", course.ID, time.Now())

		response, err := service.GradeSubmission(ctx, &SubmitAttemptRequest{
			AssessmentID: assessment.ID,
			StudentID:    "student-1",
			Answers:      []int{99, 42},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, response.Score)
		assert.Equal(t, "Failed", response.Status)
	})

	t.Run("grades negative selections as non-matching", func(t *testing.T) {
		repo, _, service := newAttemptFixture(t)
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1})
		repo.addEnrollment("student-1", course.ID, time.Now())

		response, err := service.GradeSubmission(ctx, &SubmitAttemptRequest{
			AssessmentID: assessment.ID,
			StudentID:    "student-1",
			Answers:      []int{-1, 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, response.Score)
		assert.Equal(t, 50, response.Percentage)
		assert.Equal(t, "Passed", response.Status)
		require.Len(t, repo.results, 1)
	})
}

func TestGetAssessmentResults(t *testing.T) {
	ctx := context.Background()

	repo, _, service := newAttemptFixture(t)
	course := repo.addCourse("Go Basics", "instructor-1")
	assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1})
	repo.addResult(assessment.ID, "student-1", 2, time.Now())
	repo.addResult(assessment.ID, "student-2", 0, time.Now())

	t.Run("returns results to the owning instructor", func(t *testing.T) {
		responses, err := service.GetAssessmentResults(ctx, assessment.ID, "instructor-1")
		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.Equal(t, 100, responses[0].Percentage)
		assert.Equal(t, "Passed", responses[0].Status)
		assert.Equal(t, "Failed", responses[1].Status)
	})

	t.Run("denies other instructors", func(t *testing.T) {
		_, err := service.GetAssessmentResults(ctx, assessment.ID, "instructor-2")
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})
}
