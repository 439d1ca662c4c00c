package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// SubscriptionType is the purchasable product a Subscription is issued from
type SubscriptionType struct {
	id           int64
	name         string
	validityDays int
	visitCount   int
	unlimited    bool
	price        float64
	createdAt    time.Time
}

// SubscriptionTypeParams input of NewSubscriptionType and Update
type SubscriptionTypeParams struct {
	Name         string
	ValidityDays int
	VisitCount   int
	Unlimited    bool
	Price        float64
}

// SubscriptionTypeRecord is the persisted form used by storage adapters
type SubscriptionTypeRecord struct {
	ID           int64
	Name         string
	ValidityDays int
	VisitCount   int
	Unlimited    bool
	Price        float64
	CreatedAt    time.Time
}

func NewSubscriptionType(p SubscriptionTypeParams, now time.Time) (*SubscriptionType, error) {
	t := &SubscriptionType{createdAt: now.UTC()}
	if err := t.apply(p); err != nil {
		return nil, err
	}
	return t, nil
}

func RestoreSubscriptionType(r SubscriptionTypeRecord) *SubscriptionType {
	return &SubscriptionType{
		id:           r.ID,
		name:         r.Name,
		validityDays: r.ValidityDays,
		visitCount:   r.VisitCount,
		unlimited:    r.Unlimited,
		price:        r.Price,
		createdAt:    r.CreatedAt,
	}
}

func (t *SubscriptionType) Record() SubscriptionTypeRecord {
	return SubscriptionTypeRecord{
		ID:           t.id,
		Name:         t.name,
		ValidityDays: t.validityDays,
		VisitCount:   t.visitCount,
		Unlimited:    t.unlimited,
		Price:        t.price,
		CreatedAt:    t.createdAt,
	}
}

func (t *SubscriptionType) MarkPersisted(id int64, createdAt time.Time) {
	t.id = id
	t.createdAt = createdAt
}

func (t *SubscriptionType) ID() int64            { return t.id }
func (t *SubscriptionType) Name() string         { return t.name }
func (t *SubscriptionType) ValidityDays() int    { return t.validityDays }
func (t *SubscriptionType) VisitCount() int      { return t.visitCount }
func (t *SubscriptionType) Unlimited() bool      { return t.unlimited }
func (t *SubscriptionType) Price() float64       { return t.price }
func (t *SubscriptionType) CreatedAt() time.Time { return t.createdAt }

// Update replaces the policy. Callers must make sure no subscription references the type yet.
func (t *SubscriptionType) Update(p SubscriptionTypeParams) error {
	return t.apply(p)
}

func (t *SubscriptionType) apply(p SubscriptionTypeParams) error {
	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		return validationError("subscription type name is required")
	case utf8.RuneCountInString(name) > MaxSubscriptionTypeNameLength:
		return validationError("subscription type name must be at most %d characters", MaxSubscriptionTypeNameLength)
	case p.ValidityDays <= 0 || p.ValidityDays > MaxValidityDays:
		return validationError("validityDays must be between 1 and %d", MaxValidityDays)
	case !p.Unlimited && p.VisitCount <= 0:
		return validationError("visitCount must be positive for a metered subscription type")
	case p.Price < 0:
		return validationError("price must not be negative")
	}

	t.name = name
	t.validityDays = p.ValidityDays
	t.visitCount = p.VisitCount
	t.unlimited = p.Unlimited
	t.price = p.Price
	if p.Unlimited {
		t.visitCount = 0
	}
	return nil
}

// CalculateRemainingVisits -1 for unlimited types, visitCount otherwise
func (t *SubscriptionType) CalculateRemainingVisits() int {
	if t.unlimited {
		return UnlimitedVisits
	}
	return t.visitCount
}

// Issue creates a subscription snapshot: later changes of the type do not affect it
func (t *SubscriptionType) Issue(clientID int64, now time.Time) (*Subscription, error) {
	if clientID <= 0 {
		return nil, validationError("clientID must be positive")
	}
	if t.id <= 0 {
		return nil, validationError("subscription type is not persisted")
	}

	start := now.UTC()
	return &Subscription{
		clientID:           clientID,
		subscriptionTypeID: t.id,
		startDate:          start,
		endDate:            start.AddDate(0, 0, t.validityDays),
		remainingVisits:    t.CalculateRemainingVisits(),
		status:             SubscriptionStatusActive,
		purchaseDate:       start,
		updatedAt:          start,
	}, nil
}
