package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeRepo struct {
	stored  map[int]domain.DaySchedule
	staged  map[int]domain.DaySchedule
	failDay int
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{stored: map[int]domain.DaySchedule{}, failDay: -1}
	for d := 0; d < 7; d++ {
		r.stored[d] = domain.DaySchedule{DayOfWeek: d, IsOpen: false, SlotDurationMinutes: 30}
	}
	return r
}

func (r *fakeRepo) GetWeek(ctx context.Context) (domain.WeeklySchedule, error) {
	week := make(domain.WeeklySchedule, 0, 7)
	for d := 6; d >= 0; d-- {
		week = append(week, r.stored[d])
	}
	return week, nil
}

// UpsertDay повторяет CHECK-ограничения таблицы weekly_schedule
func (r *fakeRepo) UpsertDay(ctx context.Context, day *domain.DaySchedule) error {
	if day.DayOfWeek == r.failDay {
		return errors.New("constraint violation")
	}
	if !domain.IsAllowedSlotDuration(day.SlotDurationMinutes) {
		return fmt.Errorf("check constraint: slot_duration_minutes=%d", day.SlotDurationMinutes)
	}
	if day.IsOpen && !day.OpeningTime.IsBefore(day.ClosingTime) {
		return errors.New("check constraint: opening_time < closing_time")
	}
	r.staged[day.DayOfWeek] = *day
	return nil
}

// fakeTx применяет изменения только при успешном завершении функции
type fakeTx struct{ repo *fakeRepo }

func (t *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.repo.staged = map[int]domain.DaySchedule{}
	if err := fn(ctx); err != nil {
		t.repo.staged = nil
		return err
	}
	for d, day := range t.repo.staged {
		t.repo.stored[d] = day
	}
	return nil
}

type fakeAccess struct{ staff uuid.UUID }

func (a *fakeAccess) IsStaff(ctx context.Context, userID uuid.UUID) (bool, error) {
	return userID == a.staff, nil
}

func strPtr(s string) *string { return &s }

func fullWeek() []models.DayScheduleDTO {
	days := make([]models.DayScheduleDTO, 0, 7)
	for d := 0; d < 7; d++ {
		if d == 0 {
			days = append(days, models.DayScheduleDTO{DayOfWeek: 0, IsOpen: false})
			continue
		}
		days = append(days, models.DayScheduleDTO{
			DayOfWeek: d, IsOpen: true, OpeningTime: strPtr("09:00"), ClosingTime: strPtr("17:00"), SlotDurationMinutes: 30,
		})
	}
	return days
}

func newService() (*Service, *fakeRepo, uuid.UUID) {
	repo := newFakeRepo()
	staff := uuid.New()
	svc := NewService(repo, &fakeAccess{staff: staff}, &fakeTx{repo: repo}, logger.NewNop())
	return svc, repo, staff
}

func TestGetWeek_SortedByDay(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetWeek(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	for i, d := range resp.Days {
		assert.Equal(t, i, d.DayOfWeek)
	}
}

func TestUpdateWeek_SavesAllDays(t *testing.T) {
	svc, repo, staff := newService()

	resp, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{UserID: staff, Days: fullWeek()})
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	assert.False(t, resp.Days[0].IsOpen)
	assert.True(t, resp.Days[1].IsOpen)
	assert.Equal(t, "09:00", *resp.Days[1].OpeningTime)
	assert.True(t, repo.stored[3].IsOpen)
}

func TestUpdateWeek_Validation(t *testing.T) {
	tests := map[string]func(days []models.DayScheduleDTO) []models.DayScheduleDTO{
		"six days": func(days []models.DayScheduleDTO) []models.DayScheduleDTO { return days[:6] },
		"duplicate day": func(days []models.DayScheduleDTO) []models.DayScheduleDTO {
			days[6].DayOfWeek = 5
			return days
		},
		"opening after closing": func(days []models.DayScheduleDTO) []models.DayScheduleDTO {
			days[1].OpeningTime = strPtr("18:00")
			return days
		},
		"unsupported duration": func(days []models.DayScheduleDTO) []models.DayScheduleDTO {
			days[2].SlotDurationMinutes = 20
			return days
		},
		"bad time": func(days []models.DayScheduleDTO) []models.DayScheduleDTO {
			days[3].ClosingTime = strPtr("5pm")
			return days
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			svc, repo, staff := newService()

			_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{UserID: staff, Days: mutate(fullWeek())})
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.False(t, repo.stored[1].IsOpen)
		})
	}
}

func TestUpdateWeek_ClosedDayIgnoresTimes(t *testing.T) {
	svc, _, staff := newService()
	days := fullWeek()
	days[0].OpeningTime = strPtr("20:00")
	days[0].ClosingTime = strPtr("08:00")

	_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{UserID: staff, Days: days})
	assert.NoError(t, err)
}

func TestUpdateWeek_ClosedDayIsNormalized(t *testing.T) {
	svc, repo, staff := newService()
	days := fullWeek()
	days[0].OpeningTime = strPtr("9am")
	days[0].ClosingTime = strPtr("17:00")
	days[0].SlotDurationMinutes = 0

	resp, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{UserID: staff, Days: days})
	require.NoError(t, err)

	sunday := repo.stored[0]
	assert.False(t, sunday.IsOpen)
	assert.True(t, sunday.OpeningTime.IsZero())
	assert.True(t, sunday.ClosingTime.IsZero())
	assert.Equal(t, domain.DefaultSlotDurationMinutes, sunday.SlotDurationMinutes)

	assert.Nil(t, resp.Days[0].OpeningTime)
	assert.Equal(t, 30, resp.Days[0].SlotDurationMinutes)
}

func TestUpdateWeek_ClosedDayKeepsSupportedDuration(t *testing.T) {
	svc, repo, staff := newService()
	days := fullWeek()
	days[0].SlotDurationMinutes = 45

	_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{UserID: staff, Days: days})
	require.NoError(t, err)
	assert.Equal(t, 45, repo.stored[0].SlotDurationMinutes)
}

func TestUpdateWeek_FailureRollsBackAllDays(t *testing.T) {
	svc, repo, staff := newService()
	repo.failDay = 5

	_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{UserID: staff, Days: fullWeek()})
	assert.ErrorIs(t, err, ErrInternal)

	for d := 0; d < 7; d++ {
		assert.False(t, repo.stored[d].IsOpen, "day %d", d)
	}
}

func TestUpdateWeek_StaffOnly(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{UserID: uuid.New(), Days: fullWeek()})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
