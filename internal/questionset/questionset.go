// Package questionset defines the persisted encoding of an assessment's
// multiple-choice questions and the strict decoder for it.
//
// The wire format is a JSON array of objects:
//
//	[{"question": "...", "options": ["...", "..."], "correctIndex": 0}, ...]
//
// Question order is significant: submissions are positional, one selected
// option index per question in array order.
package questionset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a stored blob is not a valid question set.
// Callers must treat it as fatal to the one assessment, not to the system:
// degrade to an empty set or report the error, never fabricate questions.
var ErrMalformed = errors.New("malformed question set")

// MinOptions is the smallest option list a question may carry.
const MinOptions = 2

type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// rawQuestion mirrors Question with pointer fields so the decoder can tell
// a missing field from a zero value.
type rawQuestion struct {
	Text         *string   `json:"question"`
	Options      *[]string `json:"options"`
	CorrectIndex *int      `json:"correctIndex"`
}

// Encode serializes questions to the canonical blob. It validates first so
// a malformed set can never be persisted; Decode(Encode(qs)) == qs holds
// for every set Encode accepts.
func Encode(questions []Question) ([]byte, error) {
	for i, q := range questions {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	return json.Marshal(questions)
}

// Decode parses a stored blob into its question list. Any structural
// problem, missing field, unknown field, or out-of-range correct index
// fails with an error wrapping ErrMalformed.
func Decode(blob []byte) ([]Question, error) {
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.DisallowUnknownFields()

	var raw []rawQuestion
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// A JSON null decodes into a nil slice without error; it is not an array.
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a question array", ErrMalformed)
	}
	// Trailing data after the array is as malformed as a bad array.
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after question array", ErrMalformed)
	}

	questions := make([]Question, len(raw))
	for i, r := range raw {
		if r.Text == nil || r.Options == nil || r.CorrectIndex == nil {
			return nil, fmt.Errorf("%w: question %d is missing a required field", ErrMalformed, i)
		}
		q := Question{
			Text:         *r.Text,
			Options:      *r.Options,
			CorrectIndex: *r.CorrectIndex,
		}
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrMalformed, i, err)
		}
		questions[i] = q
	}
	return questions, nil
}

// MaxScore reports the number of questions in a stored blob, which is the
// maximum achievable score. A blob that fails to decode scores as zero;
// the decoded count is authoritative over any stored max-score column.
func MaxScore(blob []byte) int {
	questions, err := Decode(blob)
	if err != nil {
		return 0
	}
	return len(questions)
}

func validate(q Question) error {
	if q.Text == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) < MinOptions {
		return fmt.Errorf("needs at least %d options, has %d", MinOptions, len(q.Options))
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range for %d options", q.CorrectIndex, len(q.Options))
	}
	return nil
}
