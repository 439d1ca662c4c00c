package get_remaining_visits

import (
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service SubscriptionService
	staff   StaffChecker
	logger  Logger
}

func NewHandler(service SubscriptionService, staff StaffChecker, logger Logger) *Handler {
	return &Handler{
		service: service,
		staff:   staff,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/remaining-visits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	// Клиент видит только свои посещения, сотрудник любые
	if userID != clientID && !h.staff.IsStaff(userID) {
		h.logger.Warn("GET /clients/{id}/remaining-visits - Access denied: client_id=%d, user_id=%d", clientID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetRemainingVisits(r.Context(), clientID)
	if err != nil {
		h.logger.Error("GET /clients/{id}/remaining-visits - Failed: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
