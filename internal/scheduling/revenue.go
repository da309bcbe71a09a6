package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ServicePrices индексирует цены услуг по ID
func ServicePrices(services []*domain.Service) map[uuid.UUID]float64 {
	prices := make(map[uuid.UUID]float64, len(services))
	for _, service := range services {
		if service == nil {
			continue
		}
		prices[service.ID] = service.Price
	}
	return prices
}

// TotalRevenue сумма цен услуг завершенных бронирований.
// Бронирования в других статусах и с неизвестной услугой дают 0.
func TotalRevenue(bookings []*domain.Booking, prices map[uuid.UUID]float64) float64 {
	var total float64
	for _, booking := range bookings {
		if booking == nil || !booking.IsRevenueEligible() {
			continue
		}
		total += prices[booking.ServiceID]
	}
	return total
}

// PeriodRevenue выручка за месяц. Период определяется по CreatedAt бронирования,
// а не по дате визита. CreatedAt переводится в loc перед сравнением.
func PeriodRevenue(bookings []*domain.Booking, prices map[uuid.UUID]float64, year int, month time.Month, loc *time.Location) float64 {
	if loc == nil {
		loc = time.UTC
	}
	inPeriod := make([]*domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking == nil {
			continue
		}
		created := booking.CreatedAt.In(loc)
		if created.Year() == year && created.Month() == month {
			inPeriod = append(inPeriod, booking)
		}
	}
	return TotalRevenue(inPeriod, prices)
}
