package purchase_subscription

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DanceStudio/internal/api/handlers"
	"github.com/m04kA/SMC-DanceStudio/internal/api/middleware"
	purchaseUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/purchase_subscription"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTypeNotFound       = "тип абонемента не найден"
)

type Handler struct {
	useCase PurchaseSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase PurchaseSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscriptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PurchaseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &purchaseUC.Request{
		ClientID:           clientID,
		SubscriptionTypeID: req.SubscriptionTypeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, purchaseUC.ErrSubscriptionTypeNotFound):
			handlers.RespondNotFound(w, msgTypeNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /subscriptions - Rejected: client_id=%d, type_id=%d, error=%v",
				clientID, req.SubscriptionTypeID, err)

		default:
			h.logger.Error("POST /subscriptions - Failed: client_id=%d, type_id=%d, error=%v",
				clientID, req.SubscriptionTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /subscriptions - Subscription issued: subscription_id=%d, client_id=%d", result.ID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
