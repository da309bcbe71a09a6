package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/stats/models"
)

type customerTotals struct {
	count    int
	spent    float64
	lastDate time.Time
}

// aggregateCustomers считает по каждому клиенту неотменённые бронирования,
// сумму их цен и дату последнего визита
func aggregateCustomers(profiles []*domain.CustomerProfile, bookings []*domain.Booking, prices map[uuid.UUID]float64) []models.CustomerStats {
	totals := make(map[uuid.UUID]*customerTotals, len(profiles))
	for _, b := range bookings {
		if b.Status == domain.StatusCancelled {
			continue
		}
		t, ok := totals[b.CustomerID]
		if !ok {
			t = &customerTotals{}
			totals[b.CustomerID] = t
		}
		t.count++
		t.spent += bookingPrice(b, prices)
		if b.Date.After(t.lastDate) {
			t.lastDate = b.Date
		}
	}

	result := make([]models.CustomerStats, 0, len(profiles))
	for _, p := range profiles {
		item := models.CustomerStats{
			CustomerID: p.ID,
			FullName:   p.FullName,
			Email:      p.Email,
			Phone:      p.Phone,
		}
		if t, ok := totals[p.ID]; ok {
			item.BookingsCount = t.count
			item.TotalSpent = t.spent
			last := t.lastDate.Format(domain.DateFormat)
			item.LastBookingDate = &last
		}
		result = append(result, item)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalSpent != result[j].TotalSpent {
			return result[i].TotalSpent > result[j].TotalSpent
		}
		return strings.ToLower(result[i].FullName) < strings.ToLower(result[j].FullName)
	})

	return result
}

// bookingPrice цена, зафиксированная в бронировании, либо текущая цена услуги
func bookingPrice(b *domain.Booking, prices map[uuid.UUID]float64) float64 {
	if b.TotalPrice > 0 {
		return b.TotalPrice
	}
	return prices[b.ServiceID]
}
