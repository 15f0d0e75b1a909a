package handlers

import (
	"net/http"

	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// EnrollmentHandler exposes enrollment operations.
type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
}

func NewEnrollmentHandler(service services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

type enrollRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// Enroll adds the caller to a course.
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	studentID := CallerID(c)
	if studentID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	enrollment, err := h.service.Enroll(c.Request.Context(), studentID, req.CourseID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Enrolled", enrollment,
		"course_id", req.CourseID)
}

// GetCourseEnrollments lists a course's enrollments for its instructor.
// GET /api/v1/courses/:id/enrollments
func (h *EnrollmentHandler) GetCourseEnrollments(c *gin.Context) {
	courseID := ParseStringIDParam(c, "id")
	if courseID == "" {
		return
	}

	instructorID := CallerID(c)
	if instructorID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return
	}

	enrollments, err := h.service.GetCourseEnrollments(c.Request.Context(), courseID, instructorID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Enrollments retrieved", enrollments,
		"course_id", courseID,
		"count", len(enrollments))
}

// GetStudentCourses lists the courses a student is enrolled in.
// GET /api/v1/students/:student_id/courses
func (h *EnrollmentHandler) GetStudentCourses(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	courses, err := h.service.GetStudentCourses(c.Request.Context(), studentID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Courses retrieved", courses,
		"count", len(courses))
}
