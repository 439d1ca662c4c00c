package domain

import (
	"sort"
	"time"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusSuspended SubscriptionStatus = "suspended"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionAction is an explicit transition requested by a caller.
// Expiration is implicit and has no action.
type SubscriptionAction string

const (
	SubscriptionActionSuspend  SubscriptionAction = "suspend"
	SubscriptionActionActivate SubscriptionAction = "activate"
	SubscriptionActionCancel   SubscriptionAction = "cancel"
)

var subscriptionTransitions = map[SubscriptionStatus]map[SubscriptionAction]SubscriptionStatus{
	SubscriptionStatusActive: {
		SubscriptionActionSuspend: SubscriptionStatusSuspended,
		SubscriptionActionCancel:  SubscriptionStatusCancelled,
	},
	SubscriptionStatusSuspended: {
		SubscriptionActionActivate: SubscriptionStatusActive,
	},
}

// Subscription is a client's purchased access right consumed per visit
type Subscription struct {
	id                 int64
	clientID           int64
	subscriptionTypeID int64
	startDate          time.Time
	endDate            time.Time
	remainingVisits    int
	status             SubscriptionStatus
	purchaseDate       time.Time
	updatedAt          time.Time
}

// SubscriptionRecord is the persisted form used by storage adapters
type SubscriptionRecord struct {
	ID                 int64
	ClientID           int64
	SubscriptionTypeID int64
	StartDate          time.Time
	EndDate            time.Time
	RemainingVisits    int
	Status             SubscriptionStatus
	PurchaseDate       time.Time
	UpdatedAt          time.Time
}

func RestoreSubscription(r SubscriptionRecord) (*Subscription, error) {
	if _, err := ParseSubscriptionStatus(string(r.Status)); err != nil {
		return nil, err
	}
	if r.RemainingVisits < UnlimitedVisits {
		return nil, validationError("remainingVisits %d is invalid", r.RemainingVisits)
	}
	return &Subscription{
		id:                 r.ID,
		clientID:           r.ClientID,
		subscriptionTypeID: r.SubscriptionTypeID,
		startDate:          r.StartDate,
		endDate:            r.EndDate,
		remainingVisits:    r.RemainingVisits,
		status:             r.Status,
		purchaseDate:       r.PurchaseDate,
		updatedAt:          r.UpdatedAt,
	}, nil
}

func (s *Subscription) Record() SubscriptionRecord {
	return SubscriptionRecord{
		ID:                 s.id,
		ClientID:           s.clientID,
		SubscriptionTypeID: s.subscriptionTypeID,
		StartDate:          s.startDate,
		EndDate:            s.endDate,
		RemainingVisits:    s.remainingVisits,
		Status:             s.status,
		PurchaseDate:       s.purchaseDate,
		UpdatedAt:          s.updatedAt,
	}
}

func (s *Subscription) MarkPersisted(id int64) {
	s.id = id
}

func (s *Subscription) ID() int64                  { return s.id }
func (s *Subscription) ClientID() int64            { return s.clientID }
func (s *Subscription) SubscriptionTypeID() int64  { return s.subscriptionTypeID }
func (s *Subscription) StartDate() time.Time       { return s.startDate }
func (s *Subscription) EndDate() time.Time         { return s.endDate }
func (s *Subscription) RemainingVisits() int       { return s.remainingVisits }
func (s *Subscription) Status() SubscriptionStatus { return s.status }
func (s *Subscription) PurchaseDate() time.Time    { return s.purchaseDate }
func (s *Subscription) UpdatedAt() time.Time       { return s.updatedAt }

func (s *Subscription) IsUnlimited() bool {
	return s.remainingVisits == UnlimitedVisits
}

// InPeriod reports whether now lies within [startDate, endDate]
func (s *Subscription) InPeriod(now time.Time) bool {
	return !now.Before(s.startDate) && !now.After(s.endDate)
}

// IsActive status is active, now is inside the validity window and visits are not exhausted
func (s *Subscription) IsActive(now time.Time) bool {
	return s.status == SubscriptionStatusActive &&
		s.InPeriod(now) &&
		(s.IsUnlimited() || s.remainingVisits > 0)
}

// CanUseVisit subscription is active and has a visit to spend
func (s *Subscription) CanUseVisit(now time.Time) bool {
	return s.IsActive(now) && (s.IsUnlimited() || s.remainingVisits > 0)
}

// IsExpired expired by status, by date or by exhausted visits
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.status == SubscriptionStatusExpired ||
		now.After(s.endDate) ||
		(!s.IsUnlimited() && s.remainingVisits == 0)
}

// UseVisit consumes one visit. Metered subscriptions expire the moment the counter reaches zero.
func (s *Subscription) UseVisit(now time.Time) error {
	switch {
	case s.status != SubscriptionStatusActive:
		return ErrSubscriptionNotActive
	case !s.InPeriod(now):
		return ErrSubscriptionOutOfPeriod
	case !s.IsUnlimited() && s.remainingVisits <= 0:
		return ErrNoVisitsLeft
	}

	if s.IsUnlimited() {
		return nil
	}

	s.remainingVisits--
	if s.remainingVisits == 0 {
		s.status = SubscriptionStatusExpired
	}
	s.updatedAt = now.UTC()
	return nil
}

// Apply performs an explicit transition or fails with a TransitionError
func (s *Subscription) Apply(action SubscriptionAction, now time.Time) error {
	next, ok := subscriptionTransitions[s.status][action]
	if !ok {
		return &TransitionError{Entity: "subscription", From: string(s.status), Action: string(action)}
	}
	s.status = next
	s.updatedAt = now.UTC()
	return nil
}

func (s *Subscription) Suspend(now time.Time) error {
	return s.Apply(SubscriptionActionSuspend, now)
}

func (s *Subscription) Activate(now time.Time) error {
	return s.Apply(SubscriptionActionActivate, now)
}

func (s *Subscription) Cancel(now time.Time) error {
	return s.Apply(SubscriptionActionCancel, now)
}

// ExpireIfDue moves an active or suspended subscription whose endDate has passed to expired
func (s *Subscription) ExpireIfDue(now time.Time) bool {
	if s.status != SubscriptionStatusActive && s.status != SubscriptionStatusSuspended {
		return false
	}
	if !now.After(s.endDate) {
		return false
	}
	s.status = SubscriptionStatusExpired
	s.updatedAt = now.UTC()
	return true
}

// TotalRemainingVisits aggregates the visits a client can still spend:
// any usable unlimited subscription wins with -1, otherwise usable metered visits are summed.
func TotalRemainingVisits(subs []*Subscription, now time.Time) int {
	total := 0
	for _, s := range subs {
		if !s.CanUseVisit(now) {
			continue
		}
		if s.IsUnlimited() {
			return UnlimitedVisits
		}
		total += s.remainingVisits
	}
	return total
}

// SelectUsableSubscription picks the subscription to charge for a visit:
// the one ending first, metered before unlimited on equal end dates. Nil if none is usable.
func SelectUsableSubscription(subs []*Subscription, now time.Time) *Subscription {
	usable := make([]*Subscription, 0, len(subs))
	for _, s := range subs {
		if s.CanUseVisit(now) {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	sort.SliceStable(usable, func(i, j int) bool {
		if !usable[i].endDate.Equal(usable[j].endDate) {
			return usable[i].endDate.Before(usable[j].endDate)
		}
		return !usable[i].IsUnlimited() && usable[j].IsUnlimited()
	})
	return usable[0]
}

// HasActiveSubscription reports whether the client already holds an active subscription
func HasActiveSubscription(subs []*Subscription, now time.Time) bool {
	for _, s := range subs {
		if s.IsActive(now) {
			return true
		}
	}
	return false
}

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	switch status := SubscriptionStatus(s); status {
	case SubscriptionStatusActive, SubscriptionStatusSuspended, SubscriptionStatusExpired, SubscriptionStatusCancelled:
		return status, nil
	default:
		return "", validationError("unknown subscription status %q", s)
	}
}

func ParseSubscriptionAction(s string) (SubscriptionAction, error) {
	switch action := SubscriptionAction(s); action {
	case SubscriptionActionSuspend, SubscriptionActionActivate, SubscriptionActionCancel:
		return action, nil
	default:
		return "", validationError("unknown subscription action %q", s)
	}
}
