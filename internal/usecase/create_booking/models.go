package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID     uuid.UUID        // ID клиента (из заголовка авторизации)
	ServiceID      uuid.UUID        // ID услуги
	ProfessionalID uuid.UUID        // ID мастера
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	Notes          *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
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
