package handlers

import (
	"net/http"
	"strconv"

	"github.com/edusync/course-service/internal/repositories"
	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// CourseHandler exposes course management.
type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateCourse creates a course owned by the caller.
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	course, err := h.service.Create(c.Request.Context(), &req, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Course created", course, "course_id", course.ID)
}

// GetCourse returns a course with materials and assessments.
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	course, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Course retrieved", course)
}

// ListCourses lists courses with optional pagination and instructor filter.
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := repositories.CourseFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}
	if instructorID := c.Query("instructor_id"); instructorID != "" {
		filters.InstructorID = &instructorID
	}

	courses, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Courses retrieved", gin.H{
		"courses": courses,
		"total":   total,
	})
}

// UpdateCourse edits course metadata.
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	course, err := h.service.Update(c.Request.Context(), id, &req, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Course updated", course)
}

// DeleteCourse removes a course and cascades to its children.
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
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

	h.RespondWithSuccess(c, http.StatusOK, "Course deleted", nil, "course_id", id)
}

// AddMaterial attaches a material link to a course.
// POST /api/v1/courses/:id/materials
func (h *CourseHandler) AddMaterial(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	var req services.AddMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	material, err := h.service.AddMaterial(c.Request.Context(), id, &req, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Material added", material)
}
