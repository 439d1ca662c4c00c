package purchase_subscription

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Request покупка абонемента клиентом
type Request struct {
	ClientID           int64
	SubscriptionTypeID int64
}

// Response выданный абонемент
type Response struct {
	ID                 int64
	ClientID           int64
	SubscriptionTypeID int64
	StartDate          time.Time
	EndDate            time.Time
	RemainingVisits    int // -1 для безлимитного
	Status             string
	PurchaseDate       time.Time
}

func toResponse(s *domain.Subscription) *Response {
	return &Response{
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
