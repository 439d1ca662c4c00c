package unenroll

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	unenrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/unenroll"
)

const (
	msgInvalidLessonID = "некорректный ID занятия"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotEnrolled     = "запись на занятие не найдена"
	msgLessonNotFound  = "занятие не найдено"
	msgTryAgain        = "занятие сейчас обновляется, повторите попытку"
)

type Handler struct {
	useCase UnenrollUseCase
	logger  Logger
}

func NewHandler(useCase UnenrollUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// UnenrollResponse HTTP response model
type UnenrollResponse struct {
	EnrollmentID        int64 `json:"enrollmentId"`
	LessonID            int64 `json:"lessonId"`
	CurrentParticipants int   `json:"currentParticipants"`
}

// Handle DELETE /api/v1/lessons/{lessonId}/enrollments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lessonID, err := handlers.PathID(r, "lessonId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &unenrollUC.Request{ClientID: clientID, LessonID: lessonID})
	if err != nil {
		switch {
		case errors.Is(err, unenrollUC.ErrEnrollmentNotFound):
			handlers.RespondNotFound(w, msgNotEnrolled)

		case errors.Is(err, unenrollUC.ErrLessonNotFound):
			handlers.RespondNotFound(w, msgLessonNotFound)

		case errors.Is(err, unenrollUC.ErrTooManyAttempts):
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTryAgain)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("DELETE /lessons/{id}/enrollments - Rejected: lesson_id=%d, client_id=%d, error=%v",
				lessonID, clientID, err)

		default:
			h.logger.Error("DELETE /lessons/{id}/enrollments - Failed: lesson_id=%d, client_id=%d, error=%v",
				lessonID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /lessons/{id}/enrollments - Unenrolled: lesson_id=%d, client_id=%d", lessonID, clientID)
	handlers.RespondJSON(w, http.StatusOK, &UnenrollResponse{
		EnrollmentID:        result.EnrollmentID,
		LessonID:            result.LessonID,
		CurrentParticipants: result.CurrentParticipants,
	})
}
