package update_subscription_type

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	createType "github.com/m04kA/SMC-DanceStudio/internal/api/handlers/create_subscription_type"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptiontypes"
)

const (
	msgInvalidTypeID      = "некорректный ID типа абонемента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "управлять типами абонементов могут только сотрудники"
	msgNotFound           = "тип абонемента не найден"
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

// Handle PUT /api/v1/subscription-types/{typeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	typeID, err := handlers.PathID(r, "typeId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !h.staff.IsStaff(userID) {
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req createType.SubscriptionTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), typeID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, subscriptiontypes.ErrTypeNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("PUT /subscription-types/{id} - Rejected: type_id=%d, error=%v", typeID, err)

		default:
			h.logger.Error("PUT /subscription-types/{id} - Failed: type_id=%d, error=%v", typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /subscription-types/{id} - Updated: type_id=%d", typeID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
