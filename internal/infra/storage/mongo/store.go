package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

// Store хранилище на MongoDB. Числовые идентификаторы выдаются коллекцией counters,
// взаимоисключение по залу обеспечивает документ в hall_locks, который обновляется внутри транзакции.
type Store struct {
	db *mongo.Database
}

var _ storage.ReservationStore = (*Store)(nil)

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: Connect: %v", ErrQuery, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: Ping: %v", ErrQuery, err)
	}
	return client, nil
}

func (s *Store) nextID(ctx context.Context, collection string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, wrap("nextID "+collection, err)
	}
	return counter.Seq, nil
}

func (s *Store) findOne(ctx context.Context, collection string, filter interface{}, out interface{}, notFound error) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	if err != nil {
		return wrap("findOne "+collection, err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, sort bson.D) ([]T, error) {
	cur, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, wrap("find "+coll.Name(), err)
	}
	docs := make([]T, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, coll.Name(), err)
	}
	return docs, nil
}

// updateCAS применяет update, только если документ совпадает с filter; иначе ErrConcurrentUpdate
func (s *Store) updateCAS(ctx context.Context, collection string, filter, update bson.M) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrap("update "+collection, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s id=%v", storage.ErrConcurrentUpdate, collection, filter["_id"])
	}
	return nil
}

// --- halls ---

func (s *Store) GetHallByID(ctx context.Context, id int64) (*domain.Hall, error) {
	var doc hallDoc
	if err := s.findOne(ctx, collHalls, bson.M{"_id": id}, &doc, ErrHallNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *Store) UpsertHall(ctx context.Context, h *domain.Hall) error {
	if h.ID == 0 {
		id, err := s.nextID(ctx, collHalls)
		if err != nil {
			return err
		}
		h.ID = id
	}
	_, err := s.db.Collection(collHalls).ReplaceOne(ctx, bson.M{"_id": h.ID}, toHallDoc(h), options.Replace().SetUpsert(true))
	if err != nil {
		return wrap("UpsertHall", err)
	}
	return nil
}

// LockHall записывает документ блокировки зала в текущей транзакции.
// Параллельная транзакция, тронувшая тот же документ, получит write conflict.
func (s *Store) LockHall(ctx context.Context, hallID int64) error {
	if mongo.SessionFromContext(ctx) == nil {
		return ErrNoTransaction
	}
	_, err := s.db.Collection(collHallLocks).UpdateOne(ctx,
		bson.M{"_id": hallID},
		bson.M{"$inc": bson.M{"version": int64(1)}, "$set": bson.M{"locked_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return wrap("LockHall", err)
	}
	return nil
}

// --- bookings ---

func activeBookingStatuses() bson.A {
	return bson.A{string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)}
}

func activeLessonStatuses() bson.A {
	return bson.A{string(domain.LessonStatusScheduled), string(domain.LessonStatusOngoing)}
}

// overlapFilter активные записи зала, пересекающиеся с [start, end)
func overlapFilter(hallID int64, slot domain.TimeSlot, statuses bson.A) bson.M {
	return bson.M{
		"hall_id":    hallID,
		"status":     bson.M{"$in": statuses},
		"start_time": bson.M{"$lt": slot.End()},
		"end_time":   bson.M{"$gt": slot.Start()},
	}
}

var bySlot = bson.D{{Key: "start_time", Value: 1}, {Key: "duration_minutes", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) FindActiveBookings(ctx context.Context, hallID int64) ([]*domain.Booking, error) {
	return s.listBookings(ctx, bson.M{"hall_id": hallID, "status": bson.M{"$in": activeBookingStatuses()}}, bySlot)
}

func (s *Store) FindBookingsByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	return s.listBookings(ctx, bson.M{"client_id": clientID}, bson.D{{Key: "start_time", Value: -1}, {Key: "_id", Value: 1}})
}

func (s *Store) GetBookingByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var doc bookingDoc
	if err := s.findOne(ctx, collBookings, bson.M{"_id": id}, &doc, ErrBookingNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain()
}

// SaveBooking отклоняет пересечение с активной бронью зала: в MongoDB нет exclusion constraint
func (s *Store) SaveBooking(ctx context.Context, b *domain.Booking) error {
	if b.IsActive() {
		n, err := s.db.Collection(collBookings).CountDocuments(ctx, overlapFilter(b.HallID(), b.Slot(), activeBookingStatuses()))
		if err != nil {
			return wrap("SaveBooking overlap check", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: SaveBooking - hall=%d", storage.ErrOverlap, b.HallID())
		}
	}

	id, err := s.nextID(ctx, collBookings)
	if err != nil {
		return err
	}
	doc := toBookingDoc(b)
	doc.ID = id
	if _, err := s.db.Collection(collBookings).InsertOne(ctx, doc); err != nil {
		return wrap("SaveBooking", err)
	}
	b.MarkPersisted(id, doc.CreatedAt, doc.UpdatedAt)
	return nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus) error {
	return s.updateCAS(ctx, collBookings,
		bson.M{"_id": b.ID(), "status": string(expected)},
		bson.M{"$set": bson.M{"status": string(b.Status()), "updated_at": b.UpdatedAt()}},
	)
}

func (s *Store) listBookings(ctx context.Context, filter bson.M, sort bson.D) ([]*domain.Booking, error) {
	docs, err := findAll[bookingDoc](ctx, s.db.Collection(collBookings), filter, sort)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Booking, 0, len(docs))
	for _, d := range docs {
		b, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: booking=%d: %v", ErrDecode, d.ID, err)
		}
		result = append(result, b)
	}
	return result, nil
}

// --- lessons ---

func (s *Store) FindActiveLessons(ctx context.Context, hallID int64) ([]*domain.Lesson, error) {
	return s.listLessons(ctx, bson.M{"hall_id": hallID, "status": bson.M{"$in": activeLessonStatuses()}})
}

func (s *Store) FindLessonsToRefresh(ctx context.Context, now time.Time) ([]*domain.Lesson, error) {
	return s.listLessons(ctx, bson.M{"status": bson.M{"$in": activeLessonStatuses()}, "start_time": bson.M{"$lte": now}})
}

func (s *Store) GetLessonByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	var doc lessonDoc
	if err := s.findOne(ctx, collLessons, bson.M{"_id": id}, &doc, ErrLessonNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (s *Store) SaveLesson(ctx context.Context, l *domain.Lesson) error {
	n, err := s.db.Collection(collLessons).CountDocuments(ctx, overlapFilter(l.HallID(), l.Slot(), activeLessonStatuses()))
	if err != nil {
		return wrap("SaveLesson overlap check", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: SaveLesson - hall=%d", storage.ErrOverlap, l.HallID())
	}

	id, err := s.nextID(ctx, collLessons)
	if err != nil {
		return err
	}
	doc := toLessonDoc(l)
	doc.ID = id
	if _, err := s.db.Collection(collLessons).InsertOne(ctx, doc); err != nil {
		return wrap("SaveLesson", err)
	}
	l.MarkPersisted(id, doc.CreatedAt, doc.UpdatedAt)
	return nil
}

func (s *Store) UpdateLesson(ctx context.Context, l *domain.Lesson, expectedParticipants int) error {
	return s.updateCAS(ctx, collLessons,
		bson.M{"_id": l.ID(), "current_participants": expectedParticipants, "status": string(l.Status())},
		bson.M{"$set": bson.M{"current_participants": l.CurrentParticipants(), "updated_at": time.Now().UTC()}},
	)
}

func (s *Store) UpdateLessonStatus(ctx context.Context, l *domain.Lesson, expected domain.LessonStatus) error {
	return s.updateCAS(ctx, collLessons,
		bson.M{"_id": l.ID(), "status": string(expected)},
		bson.M{"$set": bson.M{"status": string(l.Status()), "updated_at": l.UpdatedAt()}},
	)
}

func (s *Store) listLessons(ctx context.Context, filter bson.M) ([]*domain.Lesson, error) {
	docs, err := findAll[lessonDoc](ctx, s.db.Collection(collLessons), filter, bySlot)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Lesson, 0, len(docs))
	for _, d := range docs {
		l, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: lesson=%d: %v", ErrDecode, d.ID, err)
		}
		result = append(result, l)
	}
	return result, nil
}

// --- subscription types ---

func (s *Store) SaveSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error {
	id, err := s.nextID(ctx, collTypes)
	if err != nil {
		return err
	}
	doc := toSubscriptionTypeDoc(t)
	doc.ID = id
	if _, err := s.db.Collection(collTypes).InsertOne(ctx, doc); err != nil {
		return wrap("SaveSubscriptionType", err)
	}
	t.MarkPersisted(id, doc.CreatedAt)
	return nil
}

func (s *Store) GetSubscriptionTypeByID(ctx context.Context, id int64) (*domain.SubscriptionType, error) {
	var doc subscriptionTypeDoc
	if err := s.findOne(ctx, collTypes, bson.M{"_id": id}, &doc, ErrSubscriptionTypeNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *Store) UpdateSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error {
	res, err := s.db.Collection(collTypes).ReplaceOne(ctx, bson.M{"_id": t.ID()}, toSubscriptionTypeDoc(t))
	if err != nil {
		return wrap("UpdateSubscriptionType", err)
	}
	if res.MatchedCount == 0 {
		return ErrSubscriptionTypeNotFound
	}
	return nil
}

func (s *Store) CountSubscriptionsByType(ctx context.Context, typeID int64) (int, error) {
	n, err := s.db.Collection(collSubscriptions).CountDocuments(ctx, bson.M{"subscription_type_id": typeID})
	if err != nil {
		return 0, wrap("CountSubscriptionsByType", err)
	}
	return int(n), nil
}

// --- subscriptions ---

var byEndDate = bson.D{{Key: "end_date", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) FindSubscriptionsByClient(ctx context.Context, clientID int64) ([]*domain.Subscription, error) {
	return s.listSubscriptions(ctx, bson.M{"client_id": clientID})
}

func (s *Store) FindSubscriptionsToExpire(ctx context.Context, now time.Time) ([]*domain.Subscription, error) {
	return s.listSubscriptions(ctx, bson.M{
		"status":   bson.M{"$in": bson.A{string(domain.SubscriptionStatusActive), string(domain.SubscriptionStatusSuspended)}},
		"end_date": bson.M{"$lt": now},
	})
}

func (s *Store) GetSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	var doc subscriptionDoc
	if err := s.findOne(ctx, collSubscriptions, bson.M{"_id": id}, &doc, ErrSubscriptionNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain()
}

func (s *Store) SaveSubscription(ctx context.Context, sub *domain.Subscription) error {
	id, err := s.nextID(ctx, collSubscriptions)
	if err != nil {
		return err
	}
	doc := toSubscriptionDoc(sub)
	doc.ID = id
	if _, err := s.db.Collection(collSubscriptions).InsertOne(ctx, doc); err != nil {
		return wrap("SaveSubscription", err)
	}
	sub.MarkPersisted(id)
	return nil
}

func (s *Store) UpdateSubscription(ctx context.Context, sub *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error {
	return s.updateCAS(ctx, collSubscriptions,
		bson.M{"_id": sub.ID(), "remaining_visits": expectedVisits, "status": string(expectedStatus)},
		bson.M{"$set": bson.M{
			"remaining_visits": sub.RemainingVisits(),
			"status":           string(sub.Status()),
			"updated_at":       sub.UpdatedAt(),
		}},
	)
}

func (s *Store) listSubscriptions(ctx context.Context, filter bson.M) ([]*domain.Subscription, error) {
	docs, err := findAll[subscriptionDoc](ctx, s.db.Collection(collSubscriptions), filter, byEndDate)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Subscription, 0, len(docs))
	for _, d := range docs {
		sub, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: subscription=%d: %v", ErrDecode, d.ID, err)
		}
		result = append(result, sub)
	}
	return result, nil
}

// --- enrollments ---

func (s *Store) SaveEnrollment(ctx context.Context, e *domain.Enrollment) error {
	id, err := s.nextID(ctx, collEnrollments)
	if err != nil {
		return err
	}
	doc := toEnrollmentDoc(e)
	doc.ID = id
	if _, err := s.db.Collection(collEnrollments).InsertOne(ctx, doc); err != nil {
		return wrap("SaveEnrollment", err)
	}
	e.ID = id
	return nil
}

func (s *Store) GetActiveEnrollment(ctx context.Context, clientID, lessonID int64) (*domain.Enrollment, error) {
	var doc enrollmentDoc
	filter := bson.M{"client_id": clientID, "lesson_id": lessonID, "status": string(domain.EnrollmentStatusActive)}
	if err := s.findOne(ctx, collEnrollments, filter, &doc, ErrEnrollmentNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (s *Store) UpdateEnrollmentStatus(ctx context.Context, e *domain.Enrollment, expected domain.EnrollmentStatus) error {
	return s.updateCAS(ctx, collEnrollments,
		bson.M{"_id": e.ID, "status": string(expected)},
		bson.M{"$set": bson.M{"status": string(e.Status), "updated_at": e.UpdatedAt}},
	)
}
