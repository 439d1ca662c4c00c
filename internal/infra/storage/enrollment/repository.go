package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-DanceStudio/pkg/psqlbuilder"
)

// Repository репозиторий записей клиентов на занятия
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SaveEnrollment сохраняет запись. Повторная активная запись клиента на то же занятие
// отклоняется уникальным индексом (storage.ErrDuplicate).
func (r *Repository) SaveEnrollment(ctx context.Context, e *domain.Enrollment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("enrollments").
		Columns("client_id", "lesson_id", "subscription_id", "status", "created_at", "updated_at").
		Values(e.ClientID, e.LessonID, e.SubscriptionID, string(e.Status), e.CreatedAt, e.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveEnrollment - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		if kind := pgerrors.Classify(err); kind != nil {
			return fmt.Errorf("%w: SaveEnrollment - client=%d lesson=%d: %v", kind, e.ClientID, e.LessonID, err)
		}
		return fmt.Errorf("%w: SaveEnrollment - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetActiveEnrollment активная запись клиента на занятие
func (r *Repository) GetActiveEnrollment(ctx context.Context, clientID, lessonID int64) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "client_id", "lesson_id", "subscription_id", "status", "created_at", "updated_at").
		From("enrollments").
		Where(squirrel.Eq{
			"client_id": clientID,
			"lesson_id": lessonID,
			"status":    string(domain.EnrollmentStatusActive),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveEnrollment - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.Enrollment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.ClientID,
		&e.LessonID,
		&e.SubscriptionID,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveEnrollment - scan enrollment: %v", ErrScanRow, err)
	}

	return &e, nil
}

// UpdateEnrollmentStatus сохраняет статус записи, если в БД всё ещё expected
func (r *Repository) UpdateEnrollmentStatus(ctx context.Context, e *domain.Enrollment, expected domain.EnrollmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("enrollments").
		Set("status", string(e.Status)).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID, "status": string(expected)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateEnrollmentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateEnrollmentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateEnrollmentStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEnrollmentChanged
	}

	return nil
}
