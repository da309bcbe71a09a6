package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID uuid.UUID // ID мастера
	Date           time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           time.Time
	ProfessionalID uuid.UUID
	Closed         bool               // Салон не работает в этот день
	Slots          []types.TimeString // Свободные начала слотов по возрастанию
}
