package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-DanceStudio/internal/usecase/get_available_slots"
)

const (
	msgInvalidHallID   = "некорректный ID зала"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность слота"
	msgHallNotFound    = "зал не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/halls/{hallId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (minutes, default 60)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathID(r, "hallId")
	if err != nil {
		h.logger.Warn("GET /halls/{id}/available-slots - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	query := r.URL.Query()

	duration := DefaultDurationMinutes
	if raw := query.Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /halls/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /halls/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(hallID, dateStr, duration)
	if err != nil {
		h.logger.Warn("GET /halls/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrHallNotFound):
			h.logger.Warn("GET /halls/{id}/available-slots - Hall not found: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("GET /halls/{id}/available-slots - Rejected: hall_id=%d, error=%v", hallID, err)

		default:
			h.logger.Error("GET /halls/{id}/available-slots - Failed to get slots: hall_id=%d, error=%v", hallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /halls/{id}/available-slots - Slots retrieved: hall_id=%d, slots_count=%d", hallID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
