package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edusync/course-service/internal/services"
	"github.com/edusync/course-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAnalytics struct {
	calls int
}

func (s *stubAnalytics) GetInstructorAnalytics(ctx context.Context, instructorID string) (*services.InstructorAnalytics, error) {
	s.calls++
	return &services.InstructorAnalytics{
		InstructorID: instructorID,
		GeneratedAt:  time.Now(),
	}, nil
}

func newAnalyticsRouter(stub *stubAnalytics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewAnalyticsHandler(stub, nil, logger)

	router := gin.New()
	router.GET("/api/v1/instructors/:instructor_id/analytics", handler.GetInstructorAnalytics)
	return router
}

func TestGetInstructorAnalyticsAccess(t *testing.T) {
	t.Run("serves instructors their own view", func(t *testing.T) {
		stub := &stubAnalytics{}
		router := newAnalyticsRouter(stub)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/instructors/instructor-1/analytics", nil)
		req.Header.Set("X-User-ID", "instructor-1")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("denies callers asking for someone else's view", func(t *testing.T) {
		stub := &stubAnalytics{}
		router := newAnalyticsRouter(stub)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/instructors/instructor-1/analytics", nil)
		req.Header.Set("X-User-ID", "instructor-2")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, 0, stub.calls)
	})

	t.Run("denies anonymous callers", func(t *testing.T) {
		stub := &stubAnalytics{}
		router := newAnalyticsRouter(stub)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/instructors/instructor-1/analytics", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, 0, stub.calls)
	})
}
