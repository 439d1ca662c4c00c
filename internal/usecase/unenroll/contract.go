package unenroll

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
)

// Repository хранилище записей и занятий
type Repository interface {
	GetActiveEnrollment(ctx context.Context, clientID, lessonID int64) (*domain.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, e *domain.Enrollment, expected domain.EnrollmentStatus) error
	GetLessonByID(ctx context.Context, id int64) (*domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *domain.Lesson, expectedParticipants int) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	RecordOutcome(operation, outcome string)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
