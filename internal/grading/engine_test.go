package grading

import (
	"testing"

	"github.com/edusync/course-service/internal/questionset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// questionsWithKey builds one question per entry in key, with four options
// each and key[i] as the correct index.
func questionsWithKey(key []int) []questionset.Question {
	questions := make([]questionset.Question, len(key))
	for i, correct := range key {
		questions[i] = questionset.Question{
			Text:         "question",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: correct,
		}
	}
	return questions
}

func TestGradePerfectScore(t *testing.T) {
	key := []int{0, 1, 2, 3}
	result, err := Grade(questionsWithKey(key), key)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 4, result.MaxScore)
	assert.Equal(t, 100, result.Percentage)
	assert.Equal(t, StatusPassed, result.Status)
}

func TestGradeZeroScore(t *testing.T) {
	result, err := Grade(questionsWithKey([]int{0, 1, 2}), []int{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.Percentage)
	assert.Equal(t, StatusFailed, result.Status)
}

func TestGradeConcreteScenario(t *testing.T) {
	// Four questions keyed [0,1,2,3]; submission [0,1,2,0] misses the last.
	result, err := Grade(questionsWithKey([]int{0, 1, 2, 3}), []int{0, 1, 2, 0})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 75, result.Percentage)
	assert.Equal(t, StatusPassed, result.Status)
}

func TestGradeAnswerCountMismatch(t *testing.T) {
	questions := questionsWithKey([]int{0, 1, 2})

	_, err := Grade(questions, []int{0, 1})
	assert.ErrorIs(t, err, ErrAnswerCountMismatch)

	_, err = Grade(questions, []int{0, 1, 2, 3})
	assert.ErrorIs(t, err, ErrAnswerCountMismatch)
}

func TestGradeOutOfRangeSelectionsDoNotMatch(t *testing.T) {
	// Negative and past-the-end selections are silently wrong, never errors.
	result, err := Grade(questionsWithKey([]int{0, 1}), []int{-1, 99})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
}

func TestGradeScoreBounds(t *testing.T) {
	key := []int{0, 1, 2, 3, 0}
	submissions := [][]int{
		{0, 1, 2, 3, 0},
		{3, 2, 1, 0, 3},
		{0, 0, 0, 0, 0},
		{-5, 100, 2, 3, 0},
	}

	for _, submission := range submissions {
		result, err := Grade(questionsWithKey(key), submission)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, len(key))
	}
}

func TestGradePassThresholdBoundary(t *testing.T) {
	tests := []struct {
		name       string
		questions  int
		correct    int
		percentage int
		status     Status
	}{
		{"2 of 4 is exactly 50", 4, 2, 50, StatusPassed},
		{"4 of 9 rounds to 44", 9, 4, 44, StatusFailed},
		{"1 of 2 is exactly 50", 2, 1, 50, StatusPassed},
		{"1 of 3 rounds to 33", 3, 1, 33, StatusFailed},
		{"2 of 3 rounds to 67", 3, 2, 67, StatusPassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]int, tt.questions)
			submission := make([]int, tt.questions)
			for i := range submission {
				if i < tt.correct {
					submission[i] = 0 // matches key
				} else {
					submission[i] = 1 // misses
				}
			}

			result, err := Grade(questionsWithKey(key), submission)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, result.Score)
			assert.Equal(t, tt.percentage, result.Percentage)
			assert.Equal(t, tt.status, result.Status)
		})
	}
}

func TestGradeEmptyQuestionSet(t *testing.T) {
	result, err := Grade(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.MaxScore)
	assert.Equal(t, 0, result.Percentage, "zero max score must not divide by zero")
	assert.Equal(t, StatusFailed, result.Status)
}

func TestPercentageRounding(t *testing.T) {
	// Half rounds away from zero: 1/8 = 12.5% -> 13.
	assert.Equal(t, 13, Percentage(1, 8))
	assert.Equal(t, 38, Percentage(3, 8))
	assert.Equal(t, 0, Percentage(0, 7))
	assert.Equal(t, 100, Percentage(7, 7))
	assert.Equal(t, 0, Percentage(5, 0))
}
