package purchase_subscription

import (
	"time"

	purchaseUC "github.com/m04kA/SMC-DanceStudio/internal/usecase/purchase_subscription"
)

// PurchaseRequest HTTP request model
type PurchaseRequest struct {
	SubscriptionTypeID int64 `json:"subscriptionTypeId" validate:"required,gt=0"`
}

// SubscriptionResponse HTTP response model
type SubscriptionResponse struct {
	ID                 int64  `json:"id"`
	ClientID           int64  `json:"clientId"`
	SubscriptionTypeID int64  `json:"subscriptionTypeId"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	RemainingVisits    int    `json:"remainingVisits"`
	Status             string `json:"status"`
}

func FromUseCaseResponse(resp *purchaseUC.Response) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		SubscriptionTypeID: resp.SubscriptionTypeID,
		StartDate:          resp.StartDate.Format(time.RFC3339),
		EndDate:            resp.EndDate.Format(time.RFC3339),
		RemainingVisits:    resp.RemainingVisits,
		Status:             resp.Status,
	}
}
