package handlers

import (
	"net/http"

	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// AttemptHandler exposes submission grading and attempt lookups.
type AttemptHandler struct {
	BaseHandler
	service   services.AttemptService
	refresher *services.ProgressRefresher
}

func NewAttemptHandler(service services.AttemptService, refresher *services.ProgressRefresher, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		refresher:   refresher,
	}
}

// SubmitAttempt grades a submission and records the attempt.
// POST /api/v1/attempts
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	var req services.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.GradeSubmission(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	if h.refresher != nil {
		h.refresher.Request(response.StudentID)
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Submission graded", response,
		"result_id", response.ResultID,
		"status", response.Status)
}

// GetResult returns a single recorded attempt.
// GET /api/v1/attempts/:id
func (h *AttemptHandler) GetResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	response, err := h.service.GetResult(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Result retrieved", response)
}

// GetAssessmentResults lists every attempt for an assessment.
// GET /api/v1/attempts/assessment/:assessment_id
func (h *AttemptHandler) GetAssessmentResults(c *gin.Context) {
	assessmentID := ParseStringIDParam(c, "assessment_id")
	if assessmentID == "" {
		return
	}

	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	responses, err := h.service.GetAssessmentResults(c.Request.Context(), assessmentID, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Results retrieved", responses,
		"count", len(responses))
}
