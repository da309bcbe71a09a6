package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Ключи маршрутизации событий бронирований
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
	KeyBookingUpdated       = "booking.updated"
	KeyBookingDeleted       = "booking.deleted"
)

// BookingEvent сообщение о событии жизненного цикла бронирования
type BookingEvent struct {
	Type           string    `json:"type"`
	BookingID      uuid.UUID `json:"booking_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func newBookingEvent(eventType string, booking *domain.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:           eventType,
		BookingID:      booking.ID,
		CustomerID:     booking.CustomerID,
		ProfessionalID: booking.ProfessionalID,
		ServiceID:      booking.ServiceID,
		Date:           booking.Date.Format(domain.DateFormat),
		StartTime:      booking.StartTime.String(),
		Status:         string(booking.Status),
		OccurredAt:     occurredAt.UTC(),
	}
}
