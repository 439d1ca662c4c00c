package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

// Store хранилище в памяти процесса. Повторяет семантику postgres-бэкенда:
// compare-and-set обновления, запрет пересечений активных резерваций одного зала,
// один активный абонемент на клиента. Используется в тестах и при storage.backend = "memory".
type Store struct {
	mu sync.Mutex
	tables
}

type tables struct {
	seq         int64
	halls       map[int64]domain.Hall
	bookings    map[int64]domain.BookingRecord
	lessons     map[int64]domain.LessonRecord
	types       map[int64]domain.SubscriptionTypeRecord
	subs        map[int64]domain.SubscriptionRecord
	enrollments map[int64]domain.Enrollment
}

var _ storage.ReservationStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{tables: tables{
		halls:       make(map[int64]domain.Hall),
		bookings:    make(map[int64]domain.BookingRecord),
		lessons:     make(map[int64]domain.LessonRecord),
		types:       make(map[int64]domain.SubscriptionTypeRecord),
		subs:        make(map[int64]domain.SubscriptionRecord),
		enrollments: make(map[int64]domain.Enrollment),
	}}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// snapshot копия всех таблиц; записи хранятся по значению, поэтому достаточно скопировать map
func (s *Store) snapshot() tables {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := tables{
		seq:         s.seq,
		halls:       make(map[int64]domain.Hall, len(s.halls)),
		bookings:    make(map[int64]domain.BookingRecord, len(s.bookings)),
		lessons:     make(map[int64]domain.LessonRecord, len(s.lessons)),
		types:       make(map[int64]domain.SubscriptionTypeRecord, len(s.types)),
		subs:        make(map[int64]domain.SubscriptionRecord, len(s.subs)),
		enrollments: make(map[int64]domain.Enrollment, len(s.enrollments)),
	}
	for k, v := range s.halls {
		c.halls[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.lessons {
		c.lessons[k] = v
	}
	for k, v := range s.types {
		c.types[k] = v
	}
	for k, v := range s.subs {
		c.subs[k] = v
	}
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	return c
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = t
}

// --- halls ---

func (s *Store) GetHallByID(_ context.Context, id int64) (*domain.Hall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.halls[id]
	if !ok {
		return nil, ErrHallNotFound
	}
	return &h, nil
}

func (s *Store) UpsertHall(_ context.Context, h *domain.Hall) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == 0 {
		h.ID = s.nextID()
	} else if h.ID > s.seq {
		s.seq = h.ID
	}
	s.halls[h.ID] = *h
	return nil
}

// LockHall транзакции memory-бэкенда уже выполняются строго по очереди,
// поэтому достаточно проверить, что вызов сделан внутри транзакции
func (s *Store) LockHall(ctx context.Context, _ int64) error {
	if !inTx(ctx) {
		return ErrNoTransaction
	}
	return nil
}

// --- bookings ---

func (s *Store) FindActiveBookings(_ context.Context, hallID int64) ([]*domain.Booking, error) {
	return s.filterBookings(func(r domain.BookingRecord) bool {
		return r.HallID == hallID && (r.Status == domain.BookingStatusPending || r.Status == domain.BookingStatusConfirmed)
	}, false)
}

func (s *Store) FindBookingsByClient(_ context.Context, clientID int64) ([]*domain.Booking, error) {
	return s.filterBookings(func(r domain.BookingRecord) bool {
		return r.ClientID == clientID
	}, true)
}

func (s *Store) GetBookingByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return domain.RestoreBooking(rec)
}

func (s *Store) SaveBooking(_ context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := b.Record()
	if b.IsActive() {
		for _, other := range s.bookings {
			if other.HallID != rec.HallID || (other.Status != domain.BookingStatusPending && other.Status != domain.BookingStatusConfirmed) {
				continue
			}
			if domain.RestoreTimeSlot(other.StartTime, other.DurationMinutes).OverlapsWith(b.Slot()) {
				return fmt.Errorf("%w: SaveBooking - hall=%d overlaps booking=%d", storage.ErrOverlap, rec.HallID, other.ID)
			}
		}
	}

	rec.ID = s.nextID()
	s.bookings[rec.ID] = rec
	b.MarkPersisted(rec.ID, rec.CreatedAt, rec.UpdatedAt)
	return nil
}

func (s *Store) UpdateBookingStatus(_ context.Context, b *domain.Booking, expected domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bookings[b.ID()]
	if !ok || rec.Status != expected {
		return fmt.Errorf("%w: UpdateBookingStatus - booking=%d", storage.ErrConcurrentUpdate, b.ID())
	}
	rec.Status = b.Status()
	rec.UpdatedAt = b.UpdatedAt()
	s.bookings[rec.ID] = rec
	return nil
}

func (s *Store) filterBookings(match func(domain.BookingRecord) bool, newestFirst bool) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, rec := range s.bookings {
		if !match(rec) {
			continue
		}
		b, err := domain.RestoreBooking(rec)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}

	sort.Slice(result, func(i, j int) bool {
		c := result[i].Slot().Compare(result[j].Slot())
		if c == 0 {
			return result[i].ID() < result[j].ID()
		}
		if newestFirst {
			return c > 0
		}
		return c < 0
	})
	return result, nil
}

// --- lessons ---

func isActiveLesson(status domain.LessonStatus) bool {
	return status == domain.LessonStatusScheduled || status == domain.LessonStatusOngoing
}

func (s *Store) FindActiveLessons(_ context.Context, hallID int64) ([]*domain.Lesson, error) {
	return s.filterLessons(func(r domain.LessonRecord) bool {
		return r.HallID == hallID && isActiveLesson(r.Status)
	})
}

func (s *Store) FindLessonsToRefresh(_ context.Context, now time.Time) ([]*domain.Lesson, error) {
	return s.filterLessons(func(r domain.LessonRecord) bool {
		return isActiveLesson(r.Status) && !r.StartTime.After(now)
	})
}

func (s *Store) GetLessonByID(_ context.Context, id int64) (*domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lessons[id]
	if !ok {
		return nil, ErrLessonNotFound
	}
	return domain.RestoreLesson(rec)
}

func (s *Store) SaveLesson(_ context.Context, l *domain.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := l.Record()
	for _, other := range s.lessons {
		if other.HallID != rec.HallID || !isActiveLesson(other.Status) {
			continue
		}
		if domain.RestoreTimeSlot(other.StartTime, other.DurationMinutes).OverlapsWith(l.Slot()) {
			return fmt.Errorf("%w: SaveLesson - hall=%d overlaps lesson=%d", storage.ErrOverlap, rec.HallID, other.ID)
		}
	}

	rec.ID = s.nextID()
	s.lessons[rec.ID] = rec
	l.MarkPersisted(rec.ID, rec.CreatedAt, rec.UpdatedAt)
	return nil
}

func (s *Store) UpdateLesson(_ context.Context, l *domain.Lesson, expectedParticipants int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lessons[l.ID()]
	if !ok || rec.CurrentParticipants != expectedParticipants || rec.Status != l.Status() {
		return fmt.Errorf("%w: UpdateLesson - lesson=%d", storage.ErrConcurrentUpdate, l.ID())
	}
	rec.CurrentParticipants = l.CurrentParticipants()
	rec.UpdatedAt = time.Now().UTC()
	s.lessons[rec.ID] = rec
	return nil
}

func (s *Store) UpdateLessonStatus(_ context.Context, l *domain.Lesson, expected domain.LessonStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lessons[l.ID()]
	if !ok || rec.Status != expected {
		return fmt.Errorf("%w: UpdateLessonStatus - lesson=%d", storage.ErrConcurrentUpdate, l.ID())
	}
	rec.Status = l.Status()
	rec.UpdatedAt = l.UpdatedAt()
	s.lessons[rec.ID] = rec
	return nil
}

func (s *Store) filterLessons(match func(domain.LessonRecord) bool) ([]*domain.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Lesson, 0)
	for _, rec := range s.lessons {
		if !match(rec) {
			continue
		}
		l, err := domain.RestoreLesson(rec)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}

	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Slot().Compare(result[j].Slot()); c != 0 {
			return c < 0
		}
		return result[i].ID() < result[j].ID()
	})
	return result, nil
}

// --- subscription types ---

func (s *Store) SaveSubscriptionType(_ context.Context, t *domain.SubscriptionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := t.Record()
	rec.ID = s.nextID()
	s.types[rec.ID] = rec
	t.MarkPersisted(rec.ID, rec.CreatedAt)
	return nil
}

func (s *Store) GetSubscriptionTypeByID(_ context.Context, id int64) (*domain.SubscriptionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.types[id]
	if !ok {
		return nil, ErrSubscriptionTypeNotFound
	}
	return domain.RestoreSubscriptionType(rec), nil
}

func (s *Store) UpdateSubscriptionType(_ context.Context, t *domain.SubscriptionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.types[t.ID()]; !ok {
		return ErrSubscriptionTypeNotFound
	}
	s.types[t.ID()] = t.Record()
	return nil
}

func (s *Store) CountSubscriptionsByType(_ context.Context, typeID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, rec := range s.subs {
		if rec.SubscriptionTypeID == typeID {
			count++
		}
	}
	return count, nil
}

// --- subscriptions ---

func (s *Store) FindSubscriptionsByClient(_ context.Context, clientID int64) ([]*domain.Subscription, error) {
	return s.filterSubscriptions(func(r domain.SubscriptionRecord) bool {
		return r.ClientID == clientID
	})
}

func (s *Store) FindSubscriptionsToExpire(_ context.Context, now time.Time) ([]*domain.Subscription, error) {
	return s.filterSubscriptions(func(r domain.SubscriptionRecord) bool {
		return (r.Status == domain.SubscriptionStatusActive || r.Status == domain.SubscriptionStatusSuspended) &&
			r.EndDate.Before(now)
	})
}

func (s *Store) GetSubscriptionByID(_ context.Context, id int64) (*domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.subs[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return domain.RestoreSubscription(rec)
}

func (s *Store) SaveSubscription(_ context.Context, sub *domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := sub.Record()
	if err := s.checkOneActive(rec); err != nil {
		return err
	}

	rec.ID = s.nextID()
	s.subs[rec.ID] = rec
	sub.MarkPersisted(rec.ID)
	return nil
}

func (s *Store) UpdateSubscription(_ context.Context, sub *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.subs[sub.ID()]
	if !ok || rec.RemainingVisits != expectedVisits || rec.Status != expectedStatus {
		return fmt.Errorf("%w: UpdateSubscription - subscription=%d", storage.ErrConcurrentUpdate, sub.ID())
	}

	next := sub.Record()
	if err := s.checkOneActive(next); err != nil {
		return err
	}
	rec.RemainingVisits = next.RemainingVisits
	rec.Status = next.Status
	rec.UpdatedAt = next.UpdatedAt
	s.subs[rec.ID] = rec
	return nil
}

// checkOneActive аналог частичного уникального индекса subscriptions_one_active_per_client
func (s *Store) checkOneActive(rec domain.SubscriptionRecord) error {
	if rec.Status != domain.SubscriptionStatusActive {
		return nil
	}
	for _, other := range s.subs {
		if other.ID != rec.ID && other.ClientID == rec.ClientID && other.Status == domain.SubscriptionStatusActive {
			return fmt.Errorf("%w: client=%d already has active subscription=%d", storage.ErrDuplicate, rec.ClientID, other.ID)
		}
	}
	return nil
}

func (s *Store) filterSubscriptions(match func(domain.SubscriptionRecord) bool) ([]*domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Subscription, 0)
	for _, rec := range s.subs {
		if !match(rec) {
			continue
		}
		sub, err := domain.RestoreSubscription(rec)
		if err != nil {
			return nil, err
		}
		result = append(result, sub)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].EndDate().Equal(result[j].EndDate()) {
			return result[i].EndDate().Before(result[j].EndDate())
		}
		return result[i].ID() < result[j].ID()
	})
	return result, nil
}

// --- enrollments ---

func (s *Store) SaveEnrollment(_ context.Context, e *domain.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.IsActive() {
		for _, other := range s.enrollments {
			if other.IsActive() && other.ClientID == e.ClientID && other.LessonID == e.LessonID {
				return fmt.Errorf("%w: client=%d already enrolled in lesson=%d", storage.ErrDuplicate, e.ClientID, e.LessonID)
			}
		}
	}

	e.ID = s.nextID()
	s.enrollments[e.ID] = *e
	return nil
}

func (s *Store) GetActiveEnrollment(_ context.Context, clientID, lessonID int64) (*domain.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.enrollments {
		if e.IsActive() && e.ClientID == clientID && e.LessonID == lessonID {
			found := e
			return &found, nil
		}
	}
	return nil, ErrEnrollmentNotFound
}

func (s *Store) UpdateEnrollmentStatus(_ context.Context, e *domain.Enrollment, expected domain.EnrollmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.enrollments[e.ID]
	if !ok || rec.Status != expected {
		return fmt.Errorf("%w: UpdateEnrollmentStatus - enrollment=%d", storage.ErrConcurrentUpdate, e.ID)
	}
	rec.Status = e.Status
	rec.UpdatedAt = e.UpdatedAt
	s.enrollments[e.ID] = rec
	return nil
}
