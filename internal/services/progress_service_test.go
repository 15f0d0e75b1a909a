package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStudentHistory(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("orders attempts newest first", func(t *testing.T) {
		repo := newFakeRepo()
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1})

		repo.addResult(assessment.ID, "student-1", 1, base)
		repo.addResult(assessment.ID, "student-1", 2, base.Add(2*time.Hour))
		repo.addResult(assessment.ID, "student-1", 0, base.Add(time.Hour))

		service := NewProgressService(repo, testLogger())
		history, err := service.GetStudentHistory(ctx, "student-1")
		require.NoError(t, err)

		require.Len(t, history.Entries, 3)
		assert.Equal(t, 2, history.Entries[0].Score)
		assert.Equal(t, 0, history.Entries[1].Score)
		assert.Equal(t, 1, history.Entries[2].Score)
		for i := 1; i < len(history.Entries); i++ {
			assert.False(t, history.Entries[i].AttemptDate.After(history.Entries[i-1].AttemptDate))
		}
	})

	t.Run("derives percentage and status per entry", func(t *testing.T) {
		repo := newFakeRepo()
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0, 1, 2, 3})
		repo.addResult(assessment.ID, "student-1", 2, base)

		service := NewProgressService(repo, testLogger())
		history, err := service.GetStudentHistory(ctx, "student-1")
		require.NoError(t, err)

		require.Len(t, history.Entries, 1)
		entry := history.Entries[0]
		assert.Equal(t, "Quiz 1", entry.AssessmentTitle)
		assert.Equal(t, "Go Basics", entry.CourseTitle)
		assert.Equal(t, 4, entry.MaxScore)
		assert.Equal(t, 50, entry.Percentage)
		assert.Equal(t, "Passed", entry.Status)
	})

	t.Run("keeps attempts whose assessment was deleted", func(t *testing.T) {
		repo := newFakeRepo()
		course := repo.addCourse("Go Basics", "instructor-1")
		assessment := repo.addAssessment(course, "Quiz 1", []int{0})
		repo.addResult(assessment.ID, "student-1", 1, base)
		repo.addResult("deleted-assessment", "student-1", 3, base.Add(time.Hour))

		service := NewProgressService(repo, testLogger())
		history, err := service.GetStudentHistory(ctx, "student-1")
		require.NoError(t, err)

		require.Len(t, history.Entries, 2)
		orphan := history.Entries[0]
		assert.Equal(t, "Unknown Assessment", orphan.AssessmentTitle)
		assert.Equal(t, "Unknown Course", orphan.CourseTitle)
		assert.Equal(t, 3, orphan.Score)
		assert.Equal(t, 0, orphan.MaxScore)
		assert.Equal(t, 0, orphan.Percentage)
	})

	t.Run("returns empty history for unknown student", func(t *testing.T) {
		repo := newFakeRepo()
		service := NewProgressService(repo, testLogger())

		history, err := service.GetStudentHistory(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, history.Entries)
		assert.Equal(t, "nobody", history.StudentID)
	})
}
