package handlers

import (
	"net/http"

	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ProgressHandler exposes the student history view.
type ProgressHandler struct {
	BaseHandler
	service services.ProgressService
}

func NewProgressHandler(service services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetStudentHistory returns a student's attempts, newest first.
// GET /api/v1/students/:student_id/history
func (h *ProgressHandler) GetStudentHistory(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	history, err := h.service.GetStudentHistory(c.Request.Context(), studentID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "History retrieved", history,
		"student_id", studentID,
		"entries", len(history.Entries))
}
