package scheduling

import (
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SortByStatusPriority сортирует бронирования для админки:
// pending, confirmed, completed, cancelled; внутри статуса новые даты визита первыми.
func SortByStatusPriority(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		pi, pj := statusPriority(bookings[i].Status), statusPriority(bookings[j].Status)
		if pi != pj {
			return pi < pj
		}
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.After(bookings[j].Date)
		}
		return bookings[i].StartTime.IsAfter(bookings[j].StartTime)
	})
}

// SortNewestFirst сортирует по дате и времени визита, новые первыми
func SortNewestFirst(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.After(bookings[j].Date)
		}
		return bookings[i].StartTime.IsAfter(bookings[j].StartTime)
	})
}

func statusPriority(status domain.BookingStatus) int {
	if p, ok := domain.StatusPriority[status]; ok {
		return p
	}
	return len(domain.StatusPriority) + 1
}
