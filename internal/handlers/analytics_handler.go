package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes instructor analytics and exports.
type AnalyticsHandler struct {
	BaseHandler
	analytics services.AnalyticsService
	export    services.ExportService
}

func NewAnalyticsHandler(analytics services.AnalyticsService, export services.ExportService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: NewBaseHandler(logger),
		analytics:   analytics,
		export:      export,
	}
}

// GetInstructorAnalytics returns the aggregate view across an instructor's courses.
// Instructors may only read their own view.
// GET /api/v1/instructors/:instructor_id/analytics
func (h *AnalyticsHandler) GetInstructorAnalytics(c *gin.Context) {
	instructorID := ParseStringIDParam(c, "instructor_id")
	if instructorID == "" {
		return
	}

	callerID := CallerID(c)
	if callerID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}
	if callerID != instructorID {
		h.RespondWithError(c, http.StatusForbidden, "Analytics are restricted to the instructor", nil)
		return
	}

	analytics, err := h.analytics.GetInstructorAnalytics(c.Request.Context(), instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Analytics retrieved", analytics,
		"instructor_id", instructorID)
}

// ExportAssessmentResults streams an xlsx workbook of an assessment's attempts.
// GET /api/v1/assessments/:id/results/export
func (h *AnalyticsHandler) ExportAssessmentResults(c *gin.Context) {
	assessmentID := ParseStringIDParam(c, "id")
	if assessmentID == "" {
		return
	}

	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	data, err := h.export.ExportAssessmentResults(c.Request.Context(), assessmentID, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("results-%s-%s.xlsx", assessmentID, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
