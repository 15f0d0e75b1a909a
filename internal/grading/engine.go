// Package grading scores a positional multiple-choice submission against
// a decoded question set. Grading is pure computation; persisting the
// resulting attempt record is the caller's concern.
package grading

import (
	"errors"
	"math"

	"github.com/edusync/course-service/internal/questionset"
)

// ErrAnswerCountMismatch is returned when a submission does not carry
// exactly one selected option per question. The server always re-checks
// this even though clients prompt per question before submitting.
var ErrAnswerCountMismatch = errors.New("submitted answer count does not match question count")

// PassThreshold is the percentage at or above which an attempt passes.
const PassThreshold = 50

type Status string

const (
	StatusPassed Status = "Passed"
	StatusFailed Status = "Failed"
)

type Result struct {
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	Percentage int    `json:"percentage"`
	Status     Status `json:"status"`
}

// Grade awards one point per question whose selected option index equals
// the question's correct index. Out-of-range selections never error; they
// simply cannot match. An empty question set grades to 0/0, percentage 0.
func Grade(questions []questionset.Question, submission []int) (Result, error) {
	if len(submission) != len(questions) {
		return Result{}, ErrAnswerCountMismatch
	}

	score := 0
	for i, q := range questions {
		if submission[i] == q.CorrectIndex {
			score++
		}
	}

	maxScore := len(questions)
	pct := Percentage(score, maxScore)

	status := StatusFailed
	if pct >= PassThreshold {
		status = StatusPassed
	}

	return Result{
		Score:      score,
		MaxScore:   maxScore,
		Percentage: pct,
		Status:     status,
	}, nil
}

// Percentage computes round(score/maxScore*100) rounding half away from
// zero. Every percentage shown anywhere in the service goes through this
// so grading and the aggregation views can never disagree. A zero max
// score yields 0 rather than a division error.
func Percentage(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(maxScore) * 100))
}
