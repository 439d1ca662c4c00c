package create_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	createLesson "github.com/m04kA/SMC-DanceStudio/internal/usecase/create_lesson"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "создавать занятия могут только сотрудники"
	msgHallNotFound       = "зал не найден"
)

type Handler struct {
	useCase CreateLessonUseCase
	staff   StaffChecker
	logger  Logger
}

func NewHandler(useCase CreateLessonUseCase, staff StaffChecker, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		staff:   staff,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !h.staff.IsStaff(userID) {
		h.logger.Warn("POST /lessons - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req CreateLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createLesson.ErrHallNotFound):
			handlers.RespondNotFound(w, msgHallNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /lessons - Rejected: hall_id=%d, error=%v", req.HallID, err)

		default:
			h.logger.Error("POST /lessons - Failed to create lesson: hall_id=%d, error=%v", req.HallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lessons - Lesson created: lesson_id=%d, hall_id=%d, trainer_id=%d",
		result.ID, result.HallID, result.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
