package schedule

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestRepository_GetWeek(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM weekly_schedule ORDER BY day_of_week ASC")).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).
			AddRow(0, false, nil, nil, 30, nil).
			AddRow(1, true, "09:00:00", "17:00:00", 30, nil))

	week, err := repo.GetWeek(context.Background())
	require.NoError(t, err)
	require.Len(t, week, 2)

	assert.False(t, week[0].IsOpen)
	assert.True(t, week[0].OpeningTime.IsZero())
	assert.Equal(t, types.TimeString("09:00"), week[1].OpeningTime)
	assert.Equal(t, types.TimeString("17:00"), week[1].ClosingTime)
}

func TestRepository_GetByDay_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE day_of_week = $1")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(scheduleColumns))

	_, err := repo.GetByDay(context.Background(), 3)
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestRepository_UpsertDay(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_schedule (day_of_week,is_open,opening_time,closing_time,slot_duration_minutes) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (day_of_week) DO UPDATE")).
		WithArgs(1, true, "10:00", "18:00", 45).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO weekly_schedule").
		WithArgs(0, false, nil, nil, 30).
		WillReturnError(errors.New("connection reset"))

	err := repo.UpsertDay(context.Background(), &domain.DaySchedule{
		DayOfWeek:           1,
		IsOpen:              true,
		OpeningTime:         "10:00",
		ClosingTime:         "18:00",
		SlotDurationMinutes: 45,
	})
	require.NoError(t, err)

	err = repo.UpsertDay(context.Background(), &domain.DaySchedule{DayOfWeek: 0, SlotDurationMinutes: 30})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}
