package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AllowedSlotDurations slot granularities supported by the salon
var AllowedSlotDurations = []int{15, 30, 45, 60}

// DefaultSlotDurationMinutes duration stored for closed days without a supported value
const DefaultSlotDurationMinutes = 30

// DaySchedule operating hours for one weekday (0 = Sunday)
// Times and slot duration are ignored when the day is closed.
type DaySchedule struct {
	DayOfWeek           int
	IsOpen              bool
	OpeningTime         types.TimeString
	ClosingTime         types.TimeString
	SlotDurationMinutes int
	UpdatedAt           time.Time
}

// Weekday returns the day as time.Weekday
func (d *DaySchedule) Weekday() time.Weekday {
	return time.Weekday(d.DayOfWeek)
}

// Validate checks the day invariants
func (d *DaySchedule) Validate() error {
	if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
		return fmt.Errorf("%w: day of week %d is out of range", ErrValidation, d.DayOfWeek)
	}
	if !d.IsOpen {
		return nil
	}

	if err := d.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: opening time: %v", ErrValidation, err)
	}
	if err := d.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: closing time: %v", ErrValidation, err)
	}
	if !d.OpeningTime.IsBefore(d.ClosingTime) {
		return fmt.Errorf("%w: opening time %s must be before closing time %s",
			ErrValidation, d.OpeningTime, d.ClosingTime)
	}
	if !IsAllowedSlotDuration(d.SlotDurationMinutes) {
		return fmt.Errorf("%w: slot duration %d is not supported", ErrValidation, d.SlotDurationMinutes)
	}

	return nil
}

// Normalize drops the fields a closed day ignores.
// Times become NULL and an unsupported duration falls back to the default.
func (d *DaySchedule) Normalize() {
	if d.IsOpen {
		return
	}
	d.OpeningTime = ""
	d.ClosingTime = ""
	if !IsAllowedSlotDuration(d.SlotDurationMinutes) {
		d.SlotDurationMinutes = DefaultSlotDurationMinutes
	}
}

// IsAllowedSlotDuration checks the duration against AllowedSlotDurations
func IsAllowedSlotDuration(minutes int) bool {
	for _, allowed := range AllowedSlotDurations {
		if allowed == minutes {
			return true
		}
	}
	return false
}

// WeeklySchedule the seven day configurations
type WeeklySchedule []DaySchedule

// Day returns the configuration for the weekday, nil when it is missing
func (w WeeklySchedule) Day(weekday time.Weekday) *DaySchedule {
	for i := range w {
		if w[i].DayOfWeek == int(weekday) {
			return &w[i]
		}
	}
	return nil
}

// Normalize normalizes every day of the week
func (w WeeklySchedule) Normalize() {
	for i := range w {
		w[i].Normalize()
	}
}

// Validate requires exactly one valid entry per weekday
func (w WeeklySchedule) Validate() error {
	if len(w) != 7 {
		return fmt.Errorf("%w: expected 7 days, got %d", ErrValidation, len(w))
	}

	var seen [7]bool
	for i := range w {
		if err := w[i].Validate(); err != nil {
			return err
		}
		if seen[w[i].DayOfWeek] {
			return fmt.Errorf("%w: day of week %d is duplicated", ErrValidation, w[i].DayOfWeek)
		}
		seen[w[i].DayOfWeek] = true
	}

	return nil
}
