package create_subscription_type

import "github.com/m04kA/SMC-DanceStudio/internal/service/subscriptiontypes/models"

// SubscriptionTypeRequest HTTP request model, общая для создания и обновления
type SubscriptionTypeRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	ValidityDays int     `json:"validityDays" validate:"required,gt=0,lte=3650"`
	VisitCount   int     `json:"visitCount" validate:"required_if=Unlimited false,gte=0"`
	Unlimited    bool    `json:"unlimited"`
	Price        float64 `json:"price" validate:"gte=0"`
}

func (r *SubscriptionTypeRequest) ToServiceRequest() *models.TypeRequest {
	return &models.TypeRequest{
		Name:         r.Name,
		ValidityDays: r.ValidityDays,
		VisitCount:   r.VisitCount,
		Unlimited:    r.Unlimited,
		Price:        r.Price,
	}
}
