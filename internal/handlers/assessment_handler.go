package handlers

import (
	"net/http"

	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// AssessmentHandler exposes assessment management.
type AssessmentHandler struct {
	BaseHandler
	service services.AssessmentService
}

func NewAssessmentHandler(service services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAssessment creates an assessment with its question set.
// POST /api/v1/assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.Create(c.Request.Context(), &req, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Assessment created", response,
		"assessment_id", response.ID)
}

// GetAssessment returns an assessment with its decoded questions.
// GET /api/v1/assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Assessment retrieved", response)
}

// GetAssessmentsByCourse lists a course's assessments.
// GET /api/v1/courses/:id/assessments
func (h *AssessmentHandler) GetAssessmentsByCourse(c *gin.Context) {
	courseID := ParseStringIDParam(c, "id")
	if courseID == "" {
		return
	}

	responses, err := h.service.GetByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Assessments retrieved", responses,
		"count", len(responses))
}

// UpdateAssessment edits title or question set.
// PUT /api/v1/assessments/:id
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	var req services.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.Update(c.Request.Context(), id, &req, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Assessment updated", response)
}

// DeleteAssessment removes an assessment and, via cascade, its attempts.
// DELETE /api/v1/assessments/:id
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, instructorID); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Assessment deleted", nil, "assessment_id", id)
}
