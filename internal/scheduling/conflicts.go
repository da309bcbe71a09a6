package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableSlots убирает из кандидатов слоты, занятые активными бронированиями
// мастера на эту дату. Совпадение точное: (мастер, дата, время начала).
// Порядок кандидатов сохраняется.
func AvailableSlots(
	candidates []types.TimeString,
	bookings []*domain.Booking,
	professionalID uuid.UUID,
	date time.Time,
) []types.TimeString {
	taken := make(map[int]struct{}, len(bookings))
	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}
		if booking.ProfessionalID != professionalID || !domain.SameDate(booking.Date, date) {
			continue
		}
		taken[booking.StartTime.Minutes()] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := taken[slot.Minutes()]; ok {
			continue
		}
		available = append(available, slot)
	}

	return available
}

// ContainsSlot проверяет, что слот есть в списке
func ContainsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
