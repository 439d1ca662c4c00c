package enroll

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	enrollUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/enroll"
)

const (
	msgInvalidLessonID = "некорректный ID занятия"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgLessonNotFound  = "занятие не найдено"
	msgTryAgain        = "занятие сейчас обновляется, повторите попытку"
)

type Handler struct {
	useCase EnrollUseCase
	logger  Logger
}

func NewHandler(useCase EnrollUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons/{lessonId}/enrollments
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

	result, err := h.useCase.Execute(r.Context(), &enrollUC.Request{ClientID: clientID, LessonID: lessonID})
	if err != nil {
		switch {
		case errors.Is(err, enrollUC.ErrLessonNotFound):
			handlers.RespondNotFound(w, msgLessonNotFound)

		case errors.Is(err, enrollUC.ErrTooManyAttempts):
			h.logger.Warn("POST /lessons/{id}/enrollments - Contention: lesson_id=%d, client_id=%d", lessonID, clientID)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTryAgain)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /lessons/{id}/enrollments - Rejected: lesson_id=%d, client_id=%d, error=%v",
				lessonID, clientID, err)

		default:
			h.logger.Error("POST /lessons/{id}/enrollments - Failed: lesson_id=%d, client_id=%d, error=%v",
				lessonID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lessons/{id}/enrollments - Enrolled: lesson_id=%d, client_id=%d, participants=%d/%d",
		lessonID, clientID, result.CurrentParticipants, result.MaxParticipants)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
