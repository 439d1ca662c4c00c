package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-DanceStudio/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgHallNotFound       = "зал не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrHallNotFound):
			h.logger.Warn("POST /bookings - Hall not found: hall_id=%d", req.HallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /bookings - Rejected: client_id=%d, hall_id=%d, error=%v", userID, req.HallID, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, hall_id=%d, error=%v",
				userID, req.HallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, client_id=%d, hall_id=%d",
		result.ID, userID, req.HallID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
