package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDay(day int) DaySchedule {
	return DaySchedule{
		DayOfWeek:           day,
		IsOpen:              true,
		OpeningTime:         "09:00",
		ClosingTime:         "17:00",
		SlotDurationMinutes: 30,
	}
}

func TestDaySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		day     DaySchedule
		wantErr bool
	}{
		{name: "open day", day: openDay(1)},
		{name: "closed day ignores times", day: DaySchedule{DayOfWeek: 0, IsOpen: false, OpeningTime: "bad"}},
		{name: "day out of range", day: DaySchedule{DayOfWeek: 7}, wantErr: true},
		{
			name:    "opening equals closing",
			day:     DaySchedule{DayOfWeek: 2, IsOpen: true, OpeningTime: "10:00", ClosingTime: "10:00", SlotDurationMinutes: 30},
			wantErr: true,
		},
		{
			name:    "unsupported duration",
			day:     DaySchedule{DayOfWeek: 2, IsOpen: true, OpeningTime: "10:00", ClosingTime: "12:00", SlotDurationMinutes: 20},
			wantErr: true,
		},
		{
			name:    "malformed time",
			day:     DaySchedule{DayOfWeek: 2, IsOpen: true, OpeningTime: "9am", ClosingTime: "12:00", SlotDurationMinutes: 30},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.day.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWeeklySchedule(t *testing.T) {
	week := make(WeeklySchedule, 0, 7)
	for day := 0; day < 7; day++ {
		week = append(week, openDay(day))
	}
	require.NoError(t, week.Validate())

	monday := week.Day(time.Monday)
	require.NotNil(t, monday)
	assert.Equal(t, 1, monday.DayOfWeek)

	assert.ErrorIs(t, week[:6].Validate(), ErrValidation)

	week[6].DayOfWeek = 0
	assert.ErrorIs(t, week.Validate(), ErrValidation)
	assert.Nil(t, WeeklySchedule{}.Day(time.Sunday))
}

func TestDaySchedule_Normalize(t *testing.T) {
	closed := DaySchedule{DayOfWeek: 0, OpeningTime: "20:00", ClosingTime: "08:00"}
	closed.Normalize()
	assert.True(t, closed.OpeningTime.IsZero())
	assert.True(t, closed.ClosingTime.IsZero())
	assert.Equal(t, DefaultSlotDurationMinutes, closed.SlotDurationMinutes)

	open := openDay(1)
	open.Normalize()
	assert.Equal(t, openDay(1), open)
}
