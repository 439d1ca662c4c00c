package unenroll

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	unenrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/unenroll"
	"github.com/m04kA/SMC-DanceStudio/pkg/logger"
)

type stubUseCase struct {
	err error
}

func (s stubUseCase) Execute(_ context.Context, req *unenrollUC.Request) (*unenrollUC.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &unenrollUC.Response{EnrollmentID: 1, LessonID: req.LessonID}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"not enrolled", unenrollUC.ErrEnrollmentNotFound, http.StatusNotFound},
		{"lesson not found", unenrollUC.ErrLessonNotFound, http.StatusNotFound},
		{"lesson started", unenrollUC.ErrLessonAlreadyStarted, http.StatusUnprocessableEntity},
		{"contention", unenrollUC.ErrTooManyAttempts, http.StatusServiceUnavailable},
		{"internal", unenrollUC.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/lessons/4/enrollments", nil)
			req = mux.SetURLVars(req, map[string]string{"lessonId": "4"})
			req = req.WithContext(middleware.WithUserID(req.Context(), 7))
			rec := httptest.NewRecorder()

			NewHandler(stubUseCase{err: tt.err}, logger.NewNop()).Handle(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
