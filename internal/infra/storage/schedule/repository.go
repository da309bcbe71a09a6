package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"day_of_week",
	"is_open",
	"opening_time",
	"closing_time",
	"slot_duration_minutes",
	"updated_at",
}

// Repository репозиторий недельного расписания салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeek возвращает все дни расписания, упорядоченные по дню недели
// Отсутствующие дни не дополняются: их наличие проверяет вызывающий код
func (r *Repository) GetWeek(ctx context.Context) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make(domain.WeeklySchedule, 0, domain.DaysInWeek)
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}
		week = append(week, *day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}

// GetByDay возвращает расписание одного дня недели (0 = воскресенье)
func (r *Repository) GetByDay(ctx context.Context, dayOfWeek int) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedule").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanDay(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - scan day: %v", ErrScanRow, err)
	}

	return day, nil
}

// UpsertDay создает или обновляет расписание дня
// Для атомарного обновления всей недели вызывается 7 раз внутри одной транзакции
func (r *Repository) UpsertDay(ctx context.Context, day *domain.DaySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedule").
		Columns(
			"day_of_week",
			"is_open",
			"opening_time",
			"closing_time",
			"slot_duration_minutes",
		).
		Values(
			day.DayOfWeek,
			day.IsOpen,
			day.OpeningTime,
			day.ClosingTime,
			day.SlotDurationMinutes,
		).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertDay - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDay - execute upsert day=%d: %v", ErrExecQuery, day.DayOfWeek, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDay(row rowScanner) (*domain.DaySchedule, error) {
	var (
		day       domain.DaySchedule
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&day.DayOfWeek,
		&day.IsOpen,
		&day.OpeningTime,
		&day.ClosingTime,
		&day.SlotDurationMinutes,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	day.UpdatedAt = updatedAt.Time
	return &day, nil
}
