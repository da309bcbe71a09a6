package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestTotalRevenue_OnlyCompletedCounts(t *testing.T) {
	services := []*domain.Service{
		{ID: uuid.New(), Price: 10},
		{ID: uuid.New(), Price: 20},
		{ID: uuid.New(), Price: 30},
		{ID: uuid.New(), Price: 40},
	}
	statuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	bookings := make([]*domain.Booking, 0, len(services))
	for i, service := range services {
		bookings = append(bookings, &domain.Booking{ServiceID: service.ID, Status: statuses[i]})
	}

	assert.Equal(t, float64(30), TotalRevenue(bookings, ServicePrices(services)))
}

func TestTotalRevenue_UnknownServiceIsZero(t *testing.T) {
	known := &domain.Service{ID: uuid.New(), Price: 55}
	bookings := []*domain.Booking{
		{ServiceID: known.ID, Status: domain.StatusCompleted},
		{ServiceID: uuid.New(), Status: domain.StatusCompleted},
		nil,
	}

	assert.Equal(t, float64(55), TotalRevenue(bookings, ServicePrices([]*domain.Service{known, nil})))
	assert.Zero(t, TotalRevenue(nil, nil))
}

func TestPeriodRevenue_BucketsByCreatedAt(t *testing.T) {
	service := &domain.Service{ID: uuid.New(), Price: 100}
	prices := ServicePrices([]*domain.Service{service})

	bookings := []*domain.Booking{
		// created in October, appointment in November
		{
			ServiceID: service.ID,
			Status:    domain.StatusCompleted,
			Date:      time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC),
		},
		// created in September, appointment in October
		{
			ServiceID: service.ID,
			Status:    domain.StatusCompleted,
			Date:      time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2025, 9, 28, 12, 0, 0, 0, time.UTC),
		},
		{
			ServiceID: service.ID,
			Status:    domain.StatusConfirmed,
			CreatedAt: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC),
		},
	}

	assert.Equal(t, float64(100), PeriodRevenue(bookings, prices, 2025, time.October, time.UTC))
	assert.Equal(t, float64(100), PeriodRevenue(bookings, prices, 2025, time.September, time.UTC))
	assert.Zero(t, PeriodRevenue(bookings, prices, 2025, time.November, time.UTC))
}

func TestPeriodRevenue_UsesSalonLocation(t *testing.T) {
	service := &domain.Service{ID: uuid.New(), Price: 10}
	prices := ServicePrices([]*domain.Service{service})
	msk := time.FixedZone("UTC+3", 3*60*60)

	// 22:30 UTC 31 октября это 01:30 1 ноября по салону
	bookings := []*domain.Booking{{
		ServiceID: service.ID,
		Status:    domain.StatusCompleted,
		CreatedAt: time.Date(2025, 10, 31, 22, 30, 0, 0, time.UTC),
	}}

	assert.Equal(t, float64(10), PeriodRevenue(bookings, prices, 2025, time.November, msk))
	assert.Zero(t, PeriodRevenue(bookings, prices, 2025, time.October, msk))
	assert.Equal(t, float64(10), PeriodRevenue(bookings, prices, 2025, time.October, nil))
}
