package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// 2025-10-13 is a Monday
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func mondaySchedule() *domain.DaySchedule {
	return &domain.DaySchedule{
		DayOfWeek:           int(time.Monday),
		IsOpen:              true,
		OpeningTime:         "09:00",
		ClosingTime:         "17:00",
		SlotDurationMinutes: 30,
	}
}

func halfHourSlots(from, to string) []types.TimeString {
	start := types.TimeString(from).Minutes()
	end := types.TimeString(to).Minutes()
	slots := make([]types.TimeString, 0)
	for m := start; m <= end; m += 30 {
		slot, _ := types.NewTimeStringFromMinutes(m)
		slots = append(slots, slot)
	}
	return slots
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	closed := &domain.DaySchedule{DayOfWeek: int(time.Monday), IsOpen: false, OpeningTime: "09:00", ClosingTime: "17:00", SlotDurationMinutes: 30}

	nows := []time.Time{
		monday.Add(-48 * time.Hour),
		monday.Add(8 * time.Hour),
		monday.Add(23 * time.Hour),
		monday.Add(72 * time.Hour),
	}
	for _, now := range nows {
		assert.Empty(t, GenerateSlots(closed, monday, now))
		assert.NotNil(t, GenerateSlots(closed, monday, now))
	}
}

func TestGenerateSlots_DegenerateInput(t *testing.T) {
	now := monday.Add(-24 * time.Hour)

	assert.Empty(t, GenerateSlots(nil, monday, now))

	equal := mondaySchedule()
	equal.ClosingTime = "09:00"
	assert.Empty(t, GenerateSlots(equal, monday, now))

	// Tuesday configuration applied to a Monday
	wrongDay := mondaySchedule()
	wrongDay.DayOfWeek = int(time.Tuesday)
	assert.Empty(t, GenerateSlots(wrongDay, monday, now))
}

func TestGenerateSlots_BoundsAndAlignment(t *testing.T) {
	durations := []int{15, 30, 45, 60}
	now := monday.Add(-24 * time.Hour)

	for _, duration := range durations {
		schedule := mondaySchedule()
		schedule.ClosingTime = "17:10"
		schedule.SlotDurationMinutes = duration

		slots := GenerateSlots(schedule, monday, now)
		require.NotEmpty(t, slots)

		open := schedule.OpeningTime.Minutes()
		closing := schedule.ClosingTime.Minutes()
		prev := -1
		for _, slot := range slots {
			m := slot.Minutes()
			assert.GreaterOrEqual(t, m, open)
			assert.Less(t, m, closing)
			assert.Zero(t, (m-open)%duration)
			assert.Greater(t, m, prev, "ascending")
			prev = m
		}
	}
}

func TestGenerateSlots_LastSlotMayExceedClosing(t *testing.T) {
	schedule := mondaySchedule()
	schedule.ClosingTime = "10:10"
	schedule.SlotDurationMinutes = 60

	slots := GenerateSlots(schedule, monday, monday.Add(-time.Hour))
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, slots)
}

func TestGenerateSlots_Today(t *testing.T) {
	schedule := mondaySchedule()

	tests := []struct {
		name  string
		now   time.Time
		first types.TimeString
		count int
	}{
		{name: "before opening", now: monday.Add(8 * time.Hour), first: "09:00", count: 16},
		{name: "exactly on a slot", now: monday.Add(10 * time.Hour), first: "10:30", count: 13},
		{name: "inside a slot", now: monday.Add(10*time.Hour + 10*time.Minute + 30*time.Second), first: "10:30", count: 13},
		{name: "one minute before a slot", now: monday.Add(10*time.Hour + 29*time.Minute), first: "10:30", count: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := GenerateSlots(schedule, monday, tt.now)
			require.Len(t, slots, tt.count)
			assert.Equal(t, tt.first, slots[0])

			nowMinutes := tt.now.Hour()*60 + tt.now.Minute()
			for _, slot := range slots {
				assert.Greater(t, slot.Minutes(), nowMinutes)
			}
		})
	}

	assert.Empty(t, GenerateSlots(schedule, monday, monday.Add(17*time.Hour)))
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	now := monday.Add(11 * time.Hour)
	assert.Equal(t, GenerateSlots(mondaySchedule(), monday, now), GenerateSlots(mondaySchedule(), monday, now))
}

func TestAvailableSlots_MondayScenario(t *testing.T) {
	professional := uuid.New()
	existing := []*domain.Booking{
		{ProfessionalID: professional, Date: monday, StartTime: "10:00", Status: domain.StatusConfirmed},
	}

	candidates := GenerateSlots(mondaySchedule(), monday, monday.Add(8*time.Hour))
	available := AvailableSlots(candidates, existing, professional, monday)

	expected := make([]types.TimeString, 0)
	for _, slot := range halfHourSlots("09:00", "16:30") {
		if slot != "10:00" {
			expected = append(expected, slot)
		}
	}
	assert.Equal(t, expected, available)
}

func TestAvailableSlots_OnlyActiveExactMatchesBlock(t *testing.T) {
	professional := uuid.New()
	other := uuid.New()
	candidates := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}

	existing := []*domain.Booking{
		{ProfessionalID: professional, Date: monday, StartTime: "09:00", Status: domain.StatusPending},
		{ProfessionalID: professional, Date: monday, StartTime: "09:30", Status: domain.StatusCancelled},
		{ProfessionalID: professional, Date: monday, StartTime: "10:00", Status: domain.StatusCompleted},
		{ProfessionalID: other, Date: monday, StartTime: "10:30", Status: domain.StatusConfirmed},
		{ProfessionalID: professional, Date: monday.AddDate(0, 0, 7), StartTime: "11:00", Status: domain.StatusConfirmed},
		{ProfessionalID: professional, Date: monday, StartTime: "11:30", Status: domain.StatusConfirmed},
		nil,
	}

	available := AvailableSlots(candidates, existing, professional, monday)
	assert.Equal(t, []types.TimeString{"09:30", "10:00", "10:30", "11:00"}, available)

	for _, slot := range available {
		for _, b := range existing {
			if b != nil {
				assert.False(t, b.Occupies(professional, monday, slot))
			}
		}
	}
}

func TestAvailableSlots_CancelFreesSlot(t *testing.T) {
	professional := uuid.New()
	booking := &domain.Booking{ProfessionalID: professional, Date: monday, StartTime: "10:00", Status: domain.StatusPending}
	candidates := []types.TimeString{"09:30", "10:00", "10:30"}

	assert.False(t, ContainsSlot(AvailableSlots(candidates, []*domain.Booking{booking}, professional, monday), "10:00"))

	booking.Status = domain.StatusCancelled
	assert.True(t, ContainsSlot(AvailableSlots(candidates, []*domain.Booking{booking}, professional, monday), "10:00"))
}
