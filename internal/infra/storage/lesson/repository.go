package lesson

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
	"type",
	"name",
	"description",
	"start_time",
	"duration_minutes",
	"difficulty",
	"max_participants",
	"current_participants",
	"price",
	"status",
	"trainer_id",
	"hall_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SaveLesson сохраняет новое занятие. Пересечение с активным занятием того же зала
// отклоняется constraint'ом lessons_no_overlap (storage.ErrOverlap).
func (r *Repository) SaveLesson(ctx context.Context, l *domain.Lesson) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	rec := l.Record()

	query, args, err := psqlbuilder.Insert("lessons").
		Columns(
			"type",
			"name",
			"description",
			"start_time",
			"end_time",
			"duration_minutes",
			"difficulty",
			"max_participants",
			"current_participants",
			"price",
			"status",
			"trainer_id",
			"hall_id",
			"created_at",
			"updated_at",
		).
		Values(
			rec.Type,
			rec.Name,
			rec.Description,
			rec.StartTime,
			l.Slot().End(),
			rec.DurationMinutes,
			string(rec.Difficulty),
			rec.MaxParticipants,
			rec.CurrentParticipants,
			rec.Price,
			string(rec.Status),
			rec.TrainerID,
			rec.HallID,
			rec.CreatedAt,
			rec.UpdatedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveLesson - build insert query: %v", ErrBuildQuery, err)
	}

	var (
		id                   int64
		createdAt, updatedAt time.Time
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id, &createdAt, &updatedAt); err != nil {
		if kind := pgerrors.Classify(err); kind != nil {
			return fmt.Errorf("%w: SaveLesson - hall=%d: %v", kind, rec.HallID, err)
		}
		return fmt.Errorf("%w: SaveLesson - execute insert: %v", ErrExecQuery, err)
	}

	l.MarkPersisted(id, createdAt, updatedAt)
	return nil
}

// GetLessonByID получает занятие по ID
func (r *Repository) GetLessonByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLessonByID - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLesson(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLessonByID - scan lesson: %v", ErrScanRow, err)
	}

	return l, nil
}

// FindActiveLessons занятия зала в статусах scheduled и ongoing
func (r *Repository) FindActiveLessons(ctx context.Context, hallID int64) ([]*domain.Lesson, error) {
	return r.list(ctx, "FindActiveLessons", psqlbuilder.Select(columns...).
		From("lessons").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		OrderBy("start_time ASC, duration_minutes ASC"))
}

// FindLessonsToRefresh активные занятия, которые уже начались к моменту now
func (r *Repository) FindLessonsToRefresh(ctx context.Context, now time.Time) ([]*domain.Lesson, error) {
	return r.list(ctx, "FindLessonsToRefresh", psqlbuilder.Select(columns...).
		From("lessons").
		Where(squirrel.Eq{"status": activeStatuses()}).
		Where(squirrel.LtOrEq{"start_time": now}).
		OrderBy("start_time ASC"))
}

// UpdateLesson сохраняет счетчик участников (compare-and-set по expectedParticipants и статусу)
func (r *Repository) UpdateLesson(ctx context.Context, l *domain.Lesson, expectedParticipants int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lessons").
		Set("current_participants", l.CurrentParticipants()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":                   l.ID(),
			"current_participants": expectedParticipants,
			"status":               string(l.Status()),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLesson - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, "UpdateLesson", l.ID(), query, args)
}

// UpdateLessonStatus сохраняет статус занятия, если в БД всё ещё expected
func (r *Repository) UpdateLessonStatus(ctx context.Context, l *domain.Lesson, expected domain.LessonStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lessons").
		Set("status", string(l.Status())).
		Set("updated_at", l.UpdatedAt()).
		Where(squirrel.Eq{"id": l.ID(), "status": string(expected)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLessonStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, "UpdateLessonStatus", l.ID(), query, args)
}

func (r *Repository) execCAS(ctx context.Context, executor DBExecutor, op string, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if kind := pgerrors.Classify(err); kind != nil {
			return fmt.Errorf("%w: %s - lesson=%d: %v", kind, op, id, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrLessonChanged
	}
	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Lesson, error) {
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

	lessons := make([]*domain.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan lesson: %v", ErrScanRow, op, err)
		}
		lessons = append(lessons, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return lessons, nil
}

func activeStatuses() []string {
	statuses := make([]string, len(domain.ActiveLessonStatuses))
	for i, s := range domain.ActiveLessonStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var rec domain.LessonRecord
	err := row.Scan(
		&rec.ID,
		&rec.Type,
		&rec.Name,
		&rec.Description,
		&rec.StartTime,
		&rec.DurationMinutes,
		&rec.Difficulty,
		&rec.MaxParticipants,
		&rec.CurrentParticipants,
		&rec.Price,
		&rec.Status,
		&rec.TrainerID,
		&rec.HallID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return domain.RestoreLesson(rec)
}
