package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-DanceStudio/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"client_id",
	"subscription_type_id",
	"start_date",
	"end_date",
	"remaining_visits",
	"status",
	"purchase_date",
	"updated_at",
}

// Repository репозиторий абонементов и их типов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория абонементов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SaveSubscription сохраняет выпущенный абонемент.
// Второй активный абонемент клиента отклоняется частичным уникальным индексом (storage.ErrDuplicate).
func (r *Repository) SaveSubscription(ctx context.Context, s *domain.Subscription) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	rec := s.Record()

	query, args, err := psqlbuilder.Insert("subscriptions").
		Columns(
			"client_id",
			"subscription_type_id",
			"start_date",
			"end_date",
			"remaining_visits",
			"status",
			"purchase_date",
			"updated_at",
		).
		Values(
			rec.ClientID,
			rec.SubscriptionTypeID,
			rec.StartDate,
			rec.EndDate,
			rec.RemainingVisits,
			string(rec.Status),
			rec.PurchaseDate,
			rec.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveSubscription - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if kind := pgerrors.Classify(err); kind != nil {
			return fmt.Errorf("%w: SaveSubscription - client=%d: %v", kind, rec.ClientID, err)
		}
		return fmt.Errorf("%w: SaveSubscription - execute insert: %v", ErrExecQuery, err)
	}

	s.MarkPersisted(id)
	return nil
}

// GetSubscriptionByID получает абонемент по ID
func (r *Repository) GetSubscriptionByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("subscriptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscriptionByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSubscription(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubscriptionByID - scan subscription: %v", ErrScanRow, err)
	}

	return s, nil
}

// FindSubscriptionsByClient все абонементы клиента, раньше истекающие первыми
func (r *Repository) FindSubscriptionsByClient(ctx context.Context, clientID int64) ([]*domain.Subscription, error) {
	return r.list(ctx, "FindSubscriptionsByClient", psqlbuilder.Select(columns...).
		From("subscriptions").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("end_date ASC, id ASC"))
}

// FindSubscriptionsToExpire активные и приостановленные абонементы с истекшим сроком
func (r *Repository) FindSubscriptionsToExpire(ctx context.Context, now time.Time) ([]*domain.Subscription, error) {
	return r.list(ctx, "FindSubscriptionsToExpire", psqlbuilder.Select(columns...).
		From("subscriptions").
		Where(squirrel.Eq{"status": []string{
			string(domain.SubscriptionStatusActive),
			string(domain.SubscriptionStatusSuspended),
		}}).
		Where(squirrel.Lt{"end_date": now}).
		OrderBy("end_date ASC"))
}

// UpdateSubscription сохраняет остаток визитов и статус (compare-and-set по ожидаемым значениям)
func (r *Repository) UpdateSubscription(ctx context.Context, s *domain.Subscription, expectedVisits int, expectedStatus domain.SubscriptionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("remaining_visits", s.RemainingVisits()).
		Set("status", string(s.Status())).
		Set("updated_at", s.UpdatedAt()).
		Where(squirrel.Eq{
			"id":               s.ID(),
			"remaining_visits": expectedVisits,
			"status":           string(expectedStatus),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSubscription - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if kind := pgerrors.Classify(err); kind != nil {
			return fmt.Errorf("%w: UpdateSubscription - subscription=%d: %v", kind, s.ID(), err)
		}
		return fmt.Errorf("%w: UpdateSubscription - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSubscription - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSubscriptionChanged
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	subs := make([]*domain.Subscription, 0)
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan subscription: %v", ErrScanRow, op, err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return subs, nil
}

func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var rec domain.SubscriptionRecord
	err := row.Scan(
		&rec.ID,
		&rec.ClientID,
		&rec.SubscriptionTypeID,
		&rec.StartDate,
		&rec.EndDate,
		&rec.RemainingVisits,
		&rec.Status,
		&rec.PurchaseDate,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return domain.RestoreSubscription(rec)
}
