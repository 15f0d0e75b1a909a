package services

import (
	"log/slog"

	"github.com/edusync/course-service/internal/cache"
	"github.com/edusync/course-service/internal/events"
	"github.com/edusync/course-service/internal/repositories"
	"github.com/edusync/course-service/internal/validator"
)

// ServiceManager aggregates the service layer behind one dependency.
type ServiceManager interface {
	Course() CourseService
	Assessment() AssessmentService
	Attempt() AttemptService
	Enrollment() EnrollmentService
	Progress() ProgressService
	Analytics() AnalyticsService
	Export() ExportService
}

type serviceManager struct {
	course     CourseService
	assessment AssessmentService
	attempt    AttemptService
	enrollment EnrollmentService
	progress   ProgressService
	analytics  AnalyticsService
	export     ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	users repositories.UserDirectory,
	cacheService cache.CacheService,
	publisher events.Publisher,
	v *validator.Validator,
	logger *slog.Logger,
) ServiceManager {
	return &serviceManager{
		course:     NewCourseService(repo, logger, v),
		assessment: NewAssessmentService(repo, logger, v, publisher),
		attempt:    NewAttemptService(repo, logger, v, publisher, cacheService),
		enrollment: NewEnrollmentService(repo, logger, publisher),
		progress:   NewProgressService(repo, logger),
		analytics:  NewAnalyticsService(repo, users, cacheService, logger),
		export:     NewExportService(repo, users, logger),
	}
}

func (m *serviceManager) Course() CourseService         { return m.course }
func (m *serviceManager) Assessment() AssessmentService { return m.assessment }
func (m *serviceManager) Attempt() AttemptService       { return m.attempt }
func (m *serviceManager) Enrollment() EnrollmentService { return m.enrollment }
func (m *serviceManager) Progress() ProgressService     { return m.progress }
func (m *serviceManager) Analytics() AnalyticsService   { return m.analytics }
func (m *serviceManager) Export() ExportService         { return m.export }
