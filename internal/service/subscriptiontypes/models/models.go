package models

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// TypeRequest параметры типа абонемента для создания и обновления
type TypeRequest struct {
	Name         string  `json:"name"`
	ValidityDays int     `json:"validityDays"`
	VisitCount   int     `json:"visitCount"`
	Unlimited    bool    `json:"unlimited"`
	Price        float64 `json:"price"`
}

func (r *TypeRequest) ToDomainParams() domain.SubscriptionTypeParams {
	return domain.SubscriptionTypeParams{
		Name:         r.Name,
		ValidityDays: r.ValidityDays,
		VisitCount:   r.VisitCount,
		Unlimited:    r.Unlimited,
		Price:        r.Price,
	}
}

// TypeResponse ответ с данными типа абонемента
type TypeResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ValidityDays int       `json:"validityDays"`
	VisitCount   int       `json:"visitCount"`
	Unlimited    bool      `json:"unlimited"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromDomainType(t *domain.SubscriptionType) *TypeResponse {
	return &TypeResponse{
		ID:           t.ID(),
		Name:         t.Name(),
		ValidityDays: t.ValidityDays(),
		VisitCount:   t.VisitCount(),
		Unlimited:    t.Unlimited(),
		Price:        t.Price(),
		CreatedAt:    t.CreatedAt(),
	}
}
