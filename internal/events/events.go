package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the notification events this service emits.
type EventType string

const (
	// Attempt events
	EventAttemptGraded EventType = "attempt.graded"

	// Enrollment events
	EventStudentEnrolled EventType = "enrollment.created"

	// Assessment events
	EventAssessmentCreated EventType = "assessment.created"
	EventAssessmentUpdated EventType = "assessment.updated"
)

const (
	eventSource  = "course-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by every published event.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AttemptGradedEvent announces a freshly graded submission. The progress
// refresher consumes it to trigger the student's history recomputation;
// the analytics cache invalidates on it.
type AttemptGradedEvent struct {
	ResultID        string    `json:"result_id"`
	AssessmentID    string    `json:"assessment_id"`
	AssessmentTitle string    `json:"assessment_title"`
	CourseID        string    `json:"course_id"`
	StudentID       string    `json:"student_id"`
	Score           int       `json:"score"`
	MaxScore        int       `json:"max_score"`
	Percentage      int       `json:"percentage"`
	Status          string    `json:"status"`
	AttemptDate     time.Time `json:"attempt_date"`
}

type StudentEnrolledEvent struct {
	EnrollmentID   string    `json:"enrollment_id"`
	StudentID      string    `json:"student_id"`
	CourseID       string    `json:"course_id"`
	CourseTitle    string    `json:"course_title"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

type AssessmentChangedEvent struct {
	AssessmentID string `json:"assessment_id"`
	CourseID     string `json:"course_id"`
	Title        string `json:"title"`
	MaxScore     int    `json:"max_score"`
}

// Event factory functions

func NewAttemptGradedEvent(data AttemptGradedEvent) *Event {
	return newEvent(EventAttemptGraded, data)
}

func NewStudentEnrolledEvent(data StudentEnrolledEvent) *Event {
	return newEvent(EventStudentEnrolled, data)
}

func NewAssessmentCreatedEvent(data AssessmentChangedEvent) *Event {
	return newEvent(EventAssessmentCreated, data)
}

func NewAssessmentUpdatedEvent(data AssessmentChangedEvent) *Event {
	return newEvent(EventAssessmentUpdated, data)
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
