package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fakeBookings struct {
	bookings []*domain.Booking
	filter   domain.BookingsFilter
}

func (f *fakeBookings) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, nil
}

type fakeCatalog struct {
	services []*domain.Service
	err      error
}

func (f *fakeCatalog) GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	return f.services, f.err
}

func (f *fakeCatalog) GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error) {
	return nil, f.err
}

func (f *fakeCatalog) GetCustomerProfiles(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomerProfile, error) {
	return nil, f.err
}

type fakeAccess struct{ staff uuid.UUID }

func (a *fakeAccess) IsStaff(ctx context.Context, userID uuid.UUID) (bool, error) {
	return userID == a.staff, nil
}

func newService(t *testing.T, bookings *fakeBookings, catalog *fakeCatalog) (*Service, uuid.UUID) {
	t.Helper()
	grid, err := scheduling.NewGrid(domain.DefaultCalendarStart, domain.DefaultCalendarEnd, domain.DefaultCalendarCellMinutes)
	require.NoError(t, err)
	staff := uuid.New()
	return NewService(bookings, catalog, &fakeAccess{staff: staff}, grid, logger.NewNop()), staff
}

func TestWeek_PlacesBookings(t *testing.T) {
	service := uuid.New()
	wednesday := monday.AddDate(0, 0, 2)
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ID: uuid.New(), ServiceID: service, Date: wednesday, StartTime: "10:00", DurationMinutes: 90, Status: domain.StatusConfirmed},
		{ID: uuid.New(), ServiceID: uuid.New(), Date: wednesday, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusPending},
	}}
	svc, staff := newService(t, bookings, &fakeCatalog{services: []*domain.Service{{ID: service, Name: "Knotless braids"}}})

	resp, err := svc.Week(context.Background(), staff, monday.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2025-10-13", resp.WeekStart)
	assert.Len(t, resp.Cells, 22)
	require.Len(t, resp.Days, 7)
	assert.Empty(t, resp.Days[0].Bookings)

	wed := resp.Days[2]
	assert.Equal(t, "2025-10-15", wed.Date)
	require.Len(t, wed.Bookings, 2)

	first := wed.Bookings[0]
	assert.Equal(t, "Knotless braids", first.ServiceName)
	assert.Equal(t, "11:30", first.EndTime)
	assert.Equal(t, 3, first.SpanCells)
	assert.Equal(t, 2, first.StartCell)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, first.Cells)

	assert.Equal(t, domain.UnknownService, wed.Bookings[1].ServiceName)
	assert.Equal(t, domain.UnknownProfessional, wed.Bookings[1].ProfessionalName)

	require.NotNil(t, bookings.filter.EndDate)
	assert.Equal(t, monday.AddDate(0, 0, 6), *bookings.filter.EndDate)
	assert.NotContains(t, bookings.filter.Statuses, domain.StatusCancelled)
}

func TestWeek_DegradesOnCatalogFailure(t *testing.T) {
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ID: uuid.New(), Date: monday, StartTime: types.TimeString("19:30"), Status: domain.StatusPending},
	}}
	svc, staff := newService(t, bookings, &fakeCatalog{err: errors.New("catalog down")})

	resp, err := svc.Week(context.Background(), staff, monday)
	require.NoError(t, err)

	placement := resp.Days[0].Bookings[0]
	assert.Equal(t, domain.UnknownCustomer, placement.CustomerName)
	assert.Equal(t, "21:30", placement.EndTime)
	assert.Equal(t, []string{"19:30"}, placement.Cells)
	assert.Equal(t, 4, placement.SpanCells)
}

func TestWeek_StaffOnly(t *testing.T) {
	svc, _ := newService(t, &fakeBookings{}, &fakeCatalog{})

	_, err := svc.Week(context.Background(), uuid.New(), monday)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
