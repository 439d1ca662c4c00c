package mongo

import (
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

const (
	collHalls         = "halls"
	collHallLocks     = "hall_locks"
	collCounters      = "counters"
	collBookings      = "bookings"
	collLessons       = "lessons"
	collTypes         = "subscription_types"
	collSubscriptions = "subscriptions"
	collEnrollments   = "enrollments"
)

type hallDoc struct {
	ID       int64  `bson:"_id"`
	BranchID int64  `bson:"branch_id"`
	Name     string `bson:"name"`
	Capacity int    `bson:"capacity"`
}

type bookingDoc struct {
	ID              int64     `bson:"_id"`
	ClientID        int64     `bson:"client_id"`
	HallID          int64     `bson:"hall_id"`
	StartTime       time.Time `bson:"start_time"`
	EndTime         time.Time `bson:"end_time"`
	DurationMinutes int       `bson:"duration_minutes"`
	Status          string    `bson:"status"`
	Purpose         string    `bson:"purpose"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

type lessonDoc struct {
	ID                  int64     `bson:"_id"`
	Type                string    `bson:"type"`
	Name                string    `bson:"name"`
	Description         string    `bson:"description"`
	StartTime           time.Time `bson:"start_time"`
	EndTime             time.Time `bson:"end_time"`
	DurationMinutes     int       `bson:"duration_minutes"`
	Difficulty          string    `bson:"difficulty"`
	MaxParticipants     int       `bson:"max_participants"`
	CurrentParticipants int       `bson:"current_participants"`
	Price               float64   `bson:"price"`
	Status              string    `bson:"status"`
	TrainerID           int64     `bson:"trainer_id"`
	HallID              int64     `bson:"hall_id"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

type subscriptionTypeDoc struct {
	ID           int64     `bson:"_id"`
	Name         string    `bson:"name"`
	ValidityDays int       `bson:"validity_days"`
	VisitCount   int       `bson:"visit_count"`
	Unlimited    bool      `bson:"unlimited"`
	Price        float64   `bson:"price"`
	CreatedAt    time.Time `bson:"created_at"`
}

type subscriptionDoc struct {
	ID                 int64     `bson:"_id"`
	ClientID           int64     `bson:"client_id"`
	SubscriptionTypeID int64     `bson:"subscription_type_id"`
	StartDate          time.Time `bson:"start_date"`
	EndDate            time.Time `bson:"end_date"`
	RemainingVisits    int       `bson:"remaining_visits"`
	Status             string    `bson:"status"`
	PurchaseDate       time.Time `bson:"purchase_date"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

type enrollmentDoc struct {
	ID             int64     `bson:"_id"`
	ClientID       int64     `bson:"client_id"`
	LessonID       int64     `bson:"lesson_id"`
	SubscriptionID int64     `bson:"subscription_id"`
	Status         string    `bson:"status"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toHallDoc(h *domain.Hall) hallDoc {
	return hallDoc{ID: h.ID, BranchID: h.BranchID, Name: h.Name, Capacity: h.Capacity}
}

func (d hallDoc) toDomain() *domain.Hall {
	return &domain.Hall{ID: d.ID, BranchID: d.BranchID, Name: d.Name, Capacity: d.Capacity}
}

func toBookingDoc(b *domain.Booking) bookingDoc {
	r := b.Record()
	return bookingDoc{
		ID:              r.ID,
		ClientID:        r.ClientID,
		HallID:          r.HallID,
		StartTime:       r.StartTime,
		EndTime:         b.Slot().End(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		Purpose:         r.Purpose,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (d bookingDoc) toDomain() (*domain.Booking, error) {
	return domain.RestoreBooking(domain.BookingRecord{
		ID:              d.ID,
		ClientID:        d.ClientID,
		HallID:          d.HallID,
		StartTime:       d.StartTime,
		DurationMinutes: d.DurationMinutes,
		Status:          domain.BookingStatus(d.Status),
		Purpose:         d.Purpose,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	})
}

func toLessonDoc(l *domain.Lesson) lessonDoc {
	r := l.Record()
	return lessonDoc{
		ID:                  r.ID,
		Type:                r.Type,
		Name:                r.Name,
		Description:         r.Description,
		StartTime:           r.StartTime,
		EndTime:             l.Slot().End(),
		DurationMinutes:     r.DurationMinutes,
		Difficulty:          string(r.Difficulty),
		MaxParticipants:     r.MaxParticipants,
		CurrentParticipants: r.CurrentParticipants,
		Price:               r.Price,
		Status:              string(r.Status),
		TrainerID:           r.TrainerID,
		HallID:              r.HallID,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func (d lessonDoc) toDomain() (*domain.Lesson, error) {
	return domain.RestoreLesson(domain.LessonRecord{
		ID:                  d.ID,
		Type:                d.Type,
		Name:                d.Name,
		Description:         d.Description,
		StartTime:           d.StartTime,
		DurationMinutes:     d.DurationMinutes,
		Difficulty:          domain.Difficulty(d.Difficulty),
		MaxParticipants:     d.MaxParticipants,
		CurrentParticipants: d.CurrentParticipants,
		Price:               d.Price,
		Status:              domain.LessonStatus(d.Status),
		TrainerID:           d.TrainerID,
		HallID:              d.HallID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	})
}

func toSubscriptionTypeDoc(t *domain.SubscriptionType) subscriptionTypeDoc {
	r := t.Record()
	return subscriptionTypeDoc{
		ID:           r.ID,
		Name:         r.Name,
		ValidityDays: r.ValidityDays,
		VisitCount:   r.VisitCount,
		Unlimited:    r.Unlimited,
		Price:        r.Price,
		CreatedAt:    r.CreatedAt,
	}
}

func (d subscriptionTypeDoc) toDomain() *domain.SubscriptionType {
	return domain.RestoreSubscriptionType(domain.SubscriptionTypeRecord{
		ID:           d.ID,
		Name:         d.Name,
		ValidityDays: d.ValidityDays,
		VisitCount:   d.VisitCount,
		Unlimited:    d.Unlimited,
		Price:        d.Price,
		CreatedAt:    d.CreatedAt,
	})
}

func toSubscriptionDoc(s *domain.Subscription) subscriptionDoc {
	r := s.Record()
	return subscriptionDoc{
		ID:                 r.ID,
		ClientID:           r.ClientID,
		SubscriptionTypeID: r.SubscriptionTypeID,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		RemainingVisits:    r.RemainingVisits,
		Status:             string(r.Status),
		PurchaseDate:       r.PurchaseDate,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (d subscriptionDoc) toDomain() (*domain.Subscription, error) {
	return domain.RestoreSubscription(domain.SubscriptionRecord{
		ID:                 d.ID,
		ClientID:           d.ClientID,
		SubscriptionTypeID: d.SubscriptionTypeID,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		RemainingVisits:    d.RemainingVisits,
		Status:             domain.SubscriptionStatus(d.Status),
		PurchaseDate:       d.PurchaseDate,
		UpdatedAt:          d.UpdatedAt,
	})
}

func toEnrollmentDoc(e *domain.Enrollment) enrollmentDoc {
	return enrollmentDoc{
		ID:             e.ID,
		ClientID:       e.ClientID,
		LessonID:       e.LessonID,
		SubscriptionID: e.SubscriptionID,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (d enrollmentDoc) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:             d.ID,
		ClientID:       d.ClientID,
		LessonID:       d.LessonID,
		SubscriptionID: d.SubscriptionID,
		Status:         domain.EnrollmentStatus(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
