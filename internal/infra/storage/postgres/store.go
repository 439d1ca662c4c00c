package postgres

import (
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/enrollment"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/hall"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/lesson"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/subscription"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
)

type (
	HallRepository         = hall.Repository
	BookingRepository      = booking.Repository
	LessonRepository       = lesson.Repository
	SubscriptionRepository = subscription.Repository
	EnrollmentRepository   = enrollment.Repository
)

// Store собирает postgres-репозитории в одну реализацию storage.ReservationStore
type Store struct {
	*HallRepository
	*BookingRepository
	*LessonRepository
	*SubscriptionRepository
	*EnrollmentRepository
}

var _ storage.ReservationStore = (*Store)(nil)

// NewStore создает хранилище поверх обёрнутого метриками *sql.DB
func NewStore(db dbmetrics.DBExecutor) *Store {
	return &Store{
		HallRepository:         hall.NewRepository(db),
		BookingRepository:      booking.NewRepository(db),
		LessonRepository:       lesson.NewRepository(db),
		SubscriptionRepository: subscription.NewRepository(db),
		EnrollmentRepository:   enrollment.NewRepository(db),
	}
}
