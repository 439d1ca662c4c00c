package booking

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
	"hall_id",
	"start_time",
	"duration_minutes",
	"status",
	"purpose",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями залов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SaveBooking сохраняет новое бронирование и проставляет ему ID.
// Пересечение с активным бронированием того же зала отклоняется
// exclusion constraint'ом bookings_no_overlap и возвращается как storage.ErrOverlap.
func (r *Repository) SaveBooking(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	rec := b.Record()

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"hall_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"purpose",
			"created_at",
			"updated_at",
		).
		Values(
			rec.ClientID,
			rec.HallID,
			rec.StartTime,
			b.Slot().End(),
			rec.DurationMinutes,
			string(rec.Status),
			rec.Purpose,
			rec.CreatedAt,
			rec.UpdatedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveBooking - build insert query: %v", ErrBuildQuery, err)
	}

	var (
		id                   int64
		createdAt, updatedAt time.Time
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		if kind := pgerrors.Classify(err); kind != nil {
			return fmt.Errorf("%w: SaveBooking - hall=%d: %v", kind, rec.HallID, err)
		}
		return fmt.Errorf("%w: SaveBooking - execute insert: %v", ErrExecQuery, err)
	}

	b.MarkPersisted(id, createdAt, updatedAt)
	return nil
}

// GetBookingByID получает бронирование по ID
func (r *Repository) GetBookingByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// FindActiveBookings активные (pending, confirmed) бронирования зала, отсортированные по времени начала
func (r *Repository) FindActiveBookings(ctx context.Context, hallID int64) ([]*domain.Booking, error) {
	statuses := make([]string, len(domain.ActiveBookingStatuses))
	for i, s := range domain.ActiveBookingStatuses {
		statuses[i] = string(s)
	}

	return r.list(ctx, "FindActiveBookings", psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("start_time ASC, duration_minutes ASC"))
}

// FindBookingsByClient история бронирований клиента, сначала новые
func (r *Repository) FindBookingsByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	return r.list(ctx, "FindBookingsByClient", psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_time DESC"))
}

// UpdateBookingStatus сохраняет новый статус, если в БД всё ещё expected
func (r *Repository) UpdateBookingStatus(ctx context.Context, b *domain.Booking, expected domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(b.Status())).
		Set("updated_at", b.UpdatedAt()).
		Where(squirrel.Eq{"id": b.ID(), "status": string(expected)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if kind := pgerrors.Classify(err); kind != nil {
			return fmt.Errorf("%w: UpdateBookingStatus - booking=%d: %v", kind, b.ID(), err)
		}
		return fmt.Errorf("%w: UpdateBookingStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookingStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
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

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var rec domain.BookingRecord
	err := row.Scan(
		&rec.ID,
		&rec.ClientID,
		&rec.HallID,
		&rec.StartTime,
		&rec.DurationMinutes,
		&rec.Status,
		&rec.Purpose,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return domain.RestoreBooking(rec)
}
