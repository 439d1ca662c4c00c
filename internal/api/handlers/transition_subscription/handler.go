package transition_subscription

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptions"
	"github.com/m04kA/SMC-DanceStudio/internal/service/subscriptions/models"
)

const (
	msgInvalidSubscriptionID = "некорректный ID абонемента"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "менять статус абонемента могут только сотрудники"
	msgNotFound              = "абонемент не найден"
	msgChanged               = "абонемент изменён другим запросом, повторите попытку"
)

// TransitionSubscriptionRequest HTTP request model
type TransitionSubscriptionRequest struct {
	Action string `json:"action" validate:"required,oneof=suspend activate cancel"`
}

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

// Handle PATCH /api/v1/subscriptions/{subscriptionId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subscriptionID, err := handlers.PathID(r, "subscriptionId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSubscriptionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !h.staff.IsStaff(userID) {
		h.logger.Warn("PATCH /subscriptions/{id}/status - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req TransitionSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	sub, err := h.service.Transition(r.Context(), &models.TransitionRequest{
		SubscriptionID: subscriptionID,
		Action:         req.Action,
	})
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrSubscriptionNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, subscriptions.ErrSubscriptionChanged):
			handlers.RespondError(w, http.StatusConflict, msgChanged)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("PATCH /subscriptions/{id}/status - Rejected: subscription_id=%d, error=%v", subscriptionID, err)

		default:
			h.logger.Error("PATCH /subscriptions/{id}/status - Failed: subscription_id=%d, error=%v", subscriptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /subscriptions/{id}/status - Subscription id=%d is now %s", subscriptionID, sub.Status)
	handlers.RespondJSON(w, http.StatusOK, sub)
}
