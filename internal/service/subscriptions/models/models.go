package models

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// TransitionRequest запрос на смену статуса абонемента
type TransitionRequest struct {
	SubscriptionID int64  `json:"subscriptionId"`
	Action         string `json:"action"` // suspend | activate | cancel
}

// SubscriptionResponse ответ с данными абонемента
type SubscriptionResponse struct {
	ID                 int64     `json:"id"`
	ClientID           int64     `json:"clientId"`
	SubscriptionTypeID int64     `json:"subscriptionTypeId"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	RemainingVisits    int       `json:"remainingVisits"` // -1 для безлимитного
	Status             string    `json:"status"`
	PurchaseDate       time.Time `json:"purchaseDate"`
}

// RemainingVisitsResponse сводка посещений клиента по всем абонементам
type RemainingVisitsResponse struct {
	ClientID        int64 `json:"clientId"`
	RemainingVisits int   `json:"remainingVisits"` // -1, если есть действующий безлимитный
	Unlimited       bool  `json:"unlimited"`
	CanUseVisit     bool  `json:"canUseVisit"`
}

func FromDomainSubscription(s *domain.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:                 s.ID(),
		ClientID:           s.ClientID(),
		SubscriptionTypeID: s.SubscriptionTypeID(),
		StartDate:          s.StartDate(),
		EndDate:            s.EndDate(),
		RemainingVisits:    s.RemainingVisits(),
		Status:             string(s.Status()),
		PurchaseDate:       s.PurchaseDate(),
	}
}
