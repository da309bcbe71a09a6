package update_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на перенос бронирования
// Все четыре поля цели обязательны
type Request struct {
	BookingID      uuid.UUID
	UserID         uuid.UUID // кто редактирует (должен быть сотрудником)
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	Date           time.Time
	StartTime      types.TimeString
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	ServiceID       uuid.UUID
	ProfessionalID  uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	TotalPrice      float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
