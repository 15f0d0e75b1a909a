package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/questionset"
	"github.com/edusync/course-service/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory repositories.Repository for service tests.
type fakeRepo struct {
	courses     map[string]*models.Course
	assessments map[string]*models.Assessment
	results     []*models.Result
	enrollments []*models.CourseEnrollment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		courses:     make(map[string]*models.Course),
		assessments: make(map[string]*models.Assessment),
	}
}

func (f *fakeRepo) Course() repositories.CourseRepository         { return (*fakeCourses)(f) }
func (f *fakeRepo) Assessment() repositories.AssessmentRepository { return (*fakeAssessments)(f) }
func (f *fakeRepo) Result() repositories.ResultRepository         { return (*fakeResults)(f) }
func (f *fakeRepo) Enrollment() repositories.EnrollmentRepository { return (*fakeEnrollments)(f) }

// addCourse seeds a course and returns it.
func (f *fakeRepo) addCourse(title, instructorID string) *models.Course {
	course := &models.Course{
		ID:           uuid.New().String(),
		Title:        title,
		InstructorID: instructorID,
		CreatedAt:    time.Now(),
	}
	f.courses[course.ID] = course
	return course
}

// addAssessment seeds an assessment with the given answer key. Each question
// gets four options.
func (f *fakeRepo) addAssessment(course *models.Course, title string, key []int) *models.Assessment {
	questions := make([]questionset.Question, len(key))
	for i, correct := range key {
		questions[i] = questionset.Question{
			Text:         "question",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: correct,
		}
	}
	blob, err := questionset.Encode(questions)
	if err != nil {
		panic(err)
	}

	assessment := &models.Assessment{
		ID:        uuid.New().String(),
		CourseID:  course.ID,
		Title:     title,
		Questions: datatypes.JSON(blob),
		MaxScore:  len(key),
		Course:    *course,
	}
	f.assessments[assessment.ID] = assessment
	return assessment
}

// addMalformedAssessment seeds an assessment whose stored blob does not decode.
func (f *fakeRepo) addMalformedAssessment(course *models.Course, title string) *models.Assessment {
	assessment := &models.Assessment{
		ID:        uuid.New().String(),
		CourseID:  course.ID,
		Title:     title,
		Questions: datatypes.JSON(`{"not":"an array"}`),
		Course:    *course,
	}
	f.assessments[assessment.ID] = assessment
	return assessment
}

func (f *fakeRepo) addEnrollment(studentID, courseID string, at time.Time) *models.CourseEnrollment {
	enrollment := &models.CourseEnrollment{
		ID:             uuid.New().String(),
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: at,
	}
	f.enrollments = append(f.enrollments, enrollment)
	return enrollment
}

func (f *fakeRepo) addResult(assessmentID, userID string, score int, at time.Time) *models.Result {
	result := &models.Result{
		ID:           uuid.New().String(),
		AssessmentID: assessmentID,
		UserID:       userID,
		Score:        score,
		AttemptDate:  at,
	}
	f.results = append(f.results, result)
	return result
}

// ===== COURSE =====

type fakeCourses fakeRepo

func (f *fakeCourses) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourses) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (f *fakeCourses) GetByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	var out []*models.Course
	for _, course := range f.courses {
		if course.InstructorID == instructorID {
			out = append(out, course)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourses) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, course := range f.courses {
		if filters.InstructorID != nil && course.InstructorID != *filters.InstructorID {
			continue
		}
		out = append(out, course)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourses) Update(ctx context.Context, course *models.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourses) Delete(ctx context.Context, id string) error {
	delete(f.courses, id)
	return nil
}

// ===== ASSESSMENT =====

type fakeAssessments fakeRepo

func (f *fakeAssessments) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.New().String()
	}
	f.assessments[assessment.ID] = assessment
	return nil
}

func (f *fakeAssessments) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	assessment, ok := f.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return assessment, nil
}

func (f *fakeAssessments) GetByIDs(ctx context.Context, ids []string) ([]*models.Assessment, error) {
	var out []*models.Assessment
	for _, id := range ids {
		if assessment, ok := f.assessments[id]; ok {
			out = append(out, assessment)
		}
	}
	return out, nil
}

func (f *fakeAssessments) GetByCourse(ctx context.Context, courseID string) ([]*models.Assessment, error) {
	return f.GetByCourseIDs(ctx, []string{courseID})
}

func (f *fakeAssessments) GetByCourseIDs(ctx context.Context, courseIDs []string) ([]*models.Assessment, error) {
	wanted := make(map[string]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = struct{}{}
	}
	var out []*models.Assessment
	for _, assessment := range f.assessments {
		if _, ok := wanted[assessment.CourseID]; ok {
			out = append(out, assessment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssessments) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	var out []*models.Assessment
	for _, assessment := range f.assessments {
		out = append(out, assessment)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAssessments) Update(ctx context.Context, assessment *models.Assessment) error {
	f.assessments[assessment.ID] = assessment
	return nil
}

func (f *fakeAssessments) Delete(ctx context.Context, id string) error {
	delete(f.assessments, id)
	return nil
}

// ===== RESULT =====

type fakeResults fakeRepo

func (f *fakeResults) Create(ctx context.Context, result *models.Result) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.AttemptDate.IsZero() {
		result.AttemptDate = time.Now()
	}
	f.results = append(f.results, result)
	return nil
}

func (f *fakeResults) GetByID(ctx context.Context, id string) (*models.Result, error) {
	for _, result := range f.results {
		if result.ID == id {
			return result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResults) GetByUser(ctx context.Context, userID string) ([]*models.Result, error) {
	var out []*models.Result
	for _, result := range f.results {
		if result.UserID == userID {
			out = append(out, result)
		}
	}
	return out, nil
}

func (f *fakeResults) GetByAssessment(ctx context.Context, assessmentID string) ([]*models.Result, error) {
	return f.GetByAssessmentIDs(ctx, []string{assessmentID})
}

func (f *fakeResults) GetByAssessmentIDs(ctx context.Context, assessmentIDs []string) ([]*models.Result, error) {
	wanted := make(map[string]struct{}, len(assessmentIDs))
	for _, id := range assessmentIDs {
		wanted[id] = struct{}{}
	}
	var out []*models.Result
	for _, result := range f.results {
		if _, ok := wanted[result.AssessmentID]; ok {
			out = append(out, result)
		}
	}
	return out, nil
}

func (f *fakeResults) CountByAssessment(ctx context.Context, assessmentID string) (int64, error) {
	results, err := f.GetByAssessment(ctx, assessmentID)
	return int64(len(results)), err
}

// ===== ENROLLMENT =====

type fakeEnrollments fakeRepo

func (f *fakeEnrollments) Create(ctx context.Context, enrollment *models.CourseEnrollment) error {
	for _, existing := range f.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	if enrollment.ID == "" {
		enrollment.ID = uuid.New().String()
	}
	f.enrollments = append(f.enrollments, enrollment)
	return nil
}

func (f *fakeEnrollments) GetByStudent(ctx context.Context, studentID string) ([]*models.CourseEnrollment, error) {
	var out []*models.CourseEnrollment
	for _, enrollment := range f.enrollments {
		if enrollment.StudentID == studentID {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (f *fakeEnrollments) GetByCourse(ctx context.Context, courseID string) ([]*models.CourseEnrollment, error) {
	return f.GetByCourseIDs(ctx, []string{courseID})
}

func (f *fakeEnrollments) GetByCourseIDs(ctx context.Context, courseIDs []string) ([]*models.CourseEnrollment, error) {
	wanted := make(map[string]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = struct{}{}
	}
	var out []*models.CourseEnrollment
	for _, enrollment := range f.enrollments {
		if _, ok := wanted[enrollment.CourseID]; ok {
			out = append(out, enrollment)
		}
	}
	// Newest first, matching the storage layer's contract.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EnrollmentDate.After(out[j].EnrollmentDate)
	})
	return out, nil
}

func (f *fakeEnrollments) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	for _, enrollment := range f.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// ===== USER DIRECTORY =====

type fakeDirectory struct {
	users map[string]*models.User
}

func newFakeDirectory(users ...*models.User) *fakeDirectory {
	d := &fakeDirectory{users: make(map[string]*models.User)}
	for _, user := range users {
		d.users[user.ID] = user
	}
	return d
}

func (d *fakeDirectory) Get(ctx context.Context, id string) (*models.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (d *fakeDirectory) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User)
	for _, id := range ids {
		if user, ok := d.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
