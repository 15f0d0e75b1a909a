package handlers

import (
	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	courseHandler     *CourseHandler
	assessmentHandler *AssessmentHandler
	attemptHandler    *AttemptHandler
	enrollmentHandler *EnrollmentHandler
	progressHandler   *ProgressHandler
	analyticsHandler  *AnalyticsHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	refresher *services.ProgressRefresher,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		courseHandler:     NewCourseHandler(serviceManager.Course(), logger),
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), logger),
		attemptHandler:    NewAttemptHandler(serviceManager.Attempt(), refresher, logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		progressHandler:   NewProgressHandler(serviceManager.Progress(), logger),
		analyticsHandler:  NewAnalyticsHandler(serviceManager.Analytics(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "course-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Course routes
		courses := v1.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			courses.POST("/:id/materials", hm.courseHandler.AddMaterial)
			courses.GET("/:id/assessments", hm.assessmentHandler.GetAssessmentsByCourse)
			courses.GET("/:id/enrollments", hm.enrollmentHandler.GetCourseEnrollments)
		}

		// Assessment routes
		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.PUT("/:id", hm.assessmentHandler.UpdateAssessment)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)
			assessments.GET("/:id/results/export", hm.analyticsHandler.ExportAssessmentResults)
		}

		// Attempt routes
		attempts := v1.Group("/attempts")
		{
			attempts.POST("", hm.attemptHandler.SubmitAttempt)
			attempts.GET("/:id", hm.attemptHandler.GetResult)
			attempts.GET("/assessment/:assessment_id", hm.attemptHandler.GetAssessmentResults)
		}

		// Enrollment routes
		v1.POST("/enrollments", hm.enrollmentHandler.Enroll)

		// Student routes
		students := v1.Group("/students")
		{
			students.GET("/:student_id/courses", hm.enrollmentHandler.GetStudentCourses)
			students.GET("/:student_id/history", hm.progressHandler.GetStudentHistory)
		}

		// Instructor routes
		v1.GET("/instructors/:instructor_id/analytics", hm.analyticsHandler.GetInstructorAnalytics)
	}
}
