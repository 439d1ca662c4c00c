package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// indexModels индексы по коллекциям. Частичные уникальные индексы повторяют
// ограничения postgres-схемы: один активный абонемент на клиента, одна активная запись на занятие.
func indexModels() map[string][]mongo.IndexModel {
	active := func(status string) bson.M { return bson.M{"status": status} }

	return map[string][]mongo.IndexModel{
		collBookings: {
			{Keys: bson.D{{Key: "hall_id", Value: 1}, {Key: "start_time", Value: 1}}, Options: options.Index().SetName("bookings_hall_start")},
			{Keys: bson.D{{Key: "client_id", Value: 1}}, Options: options.Index().SetName("bookings_client")},
		},
		collLessons: {
			{Keys: bson.D{{Key: "hall_id", Value: 1}, {Key: "start_time", Value: 1}}, Options: options.Index().SetName("lessons_hall_start")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "start_time", Value: 1}}, Options: options.Index().SetName("lessons_status_start")},
		},
		collSubscriptions: {
			{
				Keys: bson.D{{Key: "client_id", Value: 1}},
				Options: options.Index().
					SetName("subscriptions_one_active_per_client").
					SetUnique(true).
					SetPartialFilterExpression(active(string(domain.SubscriptionStatusActive))),
			},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}}, Options: options.Index().SetName("subscriptions_status_end")},
		},
		collEnrollments: {
			{
				Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "lesson_id", Value: 1}},
				Options: options.Index().
					SetName("enrollments_one_active_per_lesson").
					SetUnique(true).
					SetPartialFilterExpression(active(string(domain.EnrollmentStatusActive))),
			},
		},
	}
}

// EnsureIndexes создаёт индексы; повторный вызов ничего не меняет
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for collection, models := range indexModels() {
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%w: EnsureIndexes %s: %v", ErrQuery, collection, err)
		}
	}
	return nil
}
