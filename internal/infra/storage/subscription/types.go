package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-DanceStudio/pkg/psqlbuilder"
)

// SaveSubscriptionType сохраняет новый тип абонемента
func (r *Repository) SaveSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	rec := t.Record()

	query, args, err := psqlbuilder.Insert("subscription_types").
		Columns("name", "validity_days", "visit_count", "unlimited", "price", "created_at").
		Values(rec.Name, rec.ValidityDays, rec.VisitCount, rec.Unlimited, rec.Price, rec.CreatedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveSubscriptionType - build insert query: %v", ErrBuildQuery, err)
	}

	var (
		id        int64
		createdAt time.Time
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id, &createdAt); err != nil {
		return fmt.Errorf("%w: SaveSubscriptionType - execute insert: %v", ErrExecQuery, err)
	}

	t.MarkPersisted(id, createdAt)
	return nil
}

// GetSubscriptionTypeByID получает тип абонемента по ID
func (r *Repository) GetSubscriptionTypeByID(ctx context.Context, id int64) (*domain.SubscriptionType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "validity_days", "visit_count", "unlimited", "price", "created_at").
		From("subscription_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscriptionTypeByID - build select query: %v", ErrBuildQuery, err)
	}

	var rec domain.SubscriptionTypeRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&rec.Name,
		&rec.ValidityDays,
		&rec.VisitCount,
		&rec.Unlimited,
		&rec.Price,
		&rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscriptionTypeByID - scan subscription type: %v", ErrScanRow, err)
	}

	return domain.RestoreSubscriptionType(rec), nil
}

// UpdateSubscriptionType перезаписывает политику типа абонемента
func (r *Repository) UpdateSubscriptionType(ctx context.Context, t *domain.SubscriptionType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	rec := t.Record()

	query, args, err := psqlbuilder.Update("subscription_types").
		Set("name", rec.Name).
		Set("validity_days", rec.ValidityDays).
		Set("visit_count", rec.VisitCount).
		Set("unlimited", rec.Unlimited).
		Set("price", rec.Price).
		Where(squirrel.Eq{"id": rec.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSubscriptionType - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSubscriptionType - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSubscriptionType - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSubscriptionTypeNotFound
	}

	return nil
}

// CountSubscriptionsByType количество абонементов, выпущенных по типу
func (r *Repository) CountSubscriptionsByType(ctx context.Context, typeID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("subscriptions").
		Where(squirrel.Eq{"subscription_type_id": typeID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountSubscriptionsByType - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSubscriptionsByType - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
