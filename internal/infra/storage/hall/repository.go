package hall

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DanceStudio/internal/domain"
	"github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-DanceStudio/pkg/psqlbuilder"
)

// Repository репозиторий залов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория залов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetHallByID получает зал по ID
func (r *Repository) GetHallByID(ctx context.Context, id int64) (*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "branch_id", "name", "capacity").
		From("halls").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHallByID - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.Hall
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.BranchID, &h.Name, &h.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHallByID - scan hall: %v", ErrScanRow, err)
	}

	return &h, nil
}

// UpsertHall создает зал с заданным ID или обновляет существующий.
// Используется для начального заполнения справочника залов из конфигурации.
func (r *Repository) UpsertHall(ctx context.Context, h *domain.Hall) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("halls").
		Columns("id", "branch_id", "name", "capacity").
		Values(h.ID, h.BranchID, h.Name, h.Capacity).
		Suffix("ON CONFLICT (id) DO UPDATE SET branch_id = EXCLUDED.branch_id, name = EXCLUDED.name, capacity = EXCLUDED.capacity").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertHall - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertHall - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// LockHall берет транзакционную advisory-блокировку зала, снимается при commit/rollback.
// Вызывается первым запросом транзакции READ COMMITTED: последующие чтения
// видят всё, что зафиксировали предыдущие владельцы блокировки.
func (r *Repository) LockHall(ctx context.Context, hallID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", hallID); err != nil {
		return fmt.Errorf("%w: LockHall - hall=%d: %v", ErrExecQuery, hallID, err)
	}

	return nil
}
