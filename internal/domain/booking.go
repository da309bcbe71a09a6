package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a customer appointment with a professional
type Booking struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID

	Date            time.Time // calendar date, UTC midnight
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized service price at booking time
	TotalPrice float64
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Occupies reports whether the booking holds the given professional/date/start slot
func (b *Booking) Occupies(professionalID uuid.UUID, date time.Time, start types.TimeString) bool {
	return b.IsActive() &&
		b.ProfessionalID == professionalID &&
		SameDate(b.Date, date) &&
		b.StartTime.Equal(start)
}

// BookingsFilter фильтр выборки бронирований. Пустые поля не ограничивают выборку
type BookingsFilter struct {
	ProfessionalID *uuid.UUID
	CustomerID     *uuid.UUID
	StartDate      *time.Time // включительно
	EndDate        *time.Time // включительно
	Statuses       []BookingStatus
}

// IsSingleDay returns true if the filter targets exactly one calendar date
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDate(*f.StartDate, *f.EndDate)
}

// BookingDetails editable part of a booking
type BookingDetails struct {
	ServiceID       uuid.UUID
	ProfessionalID  uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	TotalPrice      float64
}

// DateOnly strips the time of day and location, keeping the calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares two timestamps by calendar date only
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
