package create_subscription_type

import (
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "управлять типами абонементов могут только сотрудники"
)

type Handler struct {
	service SubscriptionTypeService
	staff   StaffChecker
	logger  Logger
}

func NewHandler(service SubscriptionTypeService, staff StaffChecker, logger Logger) *Handler {
	return &Handler{
		service: service,
		staff:   staff,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscription-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !h.staff.IsStaff(userID) {
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req SubscriptionTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /subscription-types - Rejected: %v", err)
			return
		}
		h.logger.Error("POST /subscription-types - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /subscription-types - Created: type_id=%d, name=%q", created.ID, created.Name)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
