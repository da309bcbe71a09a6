package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// 2025-10-13 is a Monday
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookings struct {
	bookings  []*domain.Booking
	createErr error
	listErr   error
}

func (f *fakeBookings) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.ProfessionalID != nil && b.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		if filter.StartDate != nil && !domain.SameDate(b.Date, *filter.StartDate) {
			continue
		}
		if len(filter.Statuses) > 0 && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookings) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.ID = uuid.New()
	created.CreatedAt = monday
	created.UpdatedAt = monday
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

type fakeSchedule struct {
	week domain.WeeklySchedule
}

func (f *fakeSchedule) GetByDay(ctx context.Context, dayOfWeek int) (*domain.DaySchedule, error) {
	if day := f.week.Day(time.Weekday(dayOfWeek)); day != nil {
		return day, nil
	}
	return nil, scheduleRepo.ErrDayNotFound
}

type fakeCatalog struct {
	services      map[uuid.UUID]*domain.Service
	professionals map[uuid.UUID]*domain.Professional
}

func (f *fakeCatalog) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	if p, ok := f.professionals[id]; ok {
		return p, nil
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

type fakeTx struct {
	err error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fakeEvents struct {
	created []*domain.Booking
}

func (f *fakeEvents) BookingCreated(ctx context.Context, booking *domain.Booking) {
	f.created = append(f.created, booking)
}

type fakeMetrics struct {
	created   int
	conflicts int
}

func (f *fakeMetrics) IncBookingsCreated() { f.created++ }
func (f *fakeMetrics) IncSlotConflicts()   { f.conflicts++ }

type fixture struct {
	uc           *UseCase
	bookings     *fakeBookings
	catalog      *fakeCatalog
	tx           *fakeTx
	events       *fakeEvents
	metrics      *fakeMetrics
	service      uuid.UUID
	professional uuid.UUID
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings:     &fakeBookings{},
		tx:           &fakeTx{},
		events:       &fakeEvents{},
		metrics:      &fakeMetrics{},
		service:      uuid.New(),
		professional: uuid.New(),
	}
	f.catalog = &fakeCatalog{
		services: map[uuid.UUID]*domain.Service{
			f.service: {ID: f.service, Name: "Silk press", Price: 85, DurationMinutes: 45, IsActive: true},
		},
		professionals: map[uuid.UUID]*domain.Professional{
			f.professional: {ID: f.professional, FullName: "Amara", IsActive: true},
		},
	}
	schedule := &fakeSchedule{week: domain.WeeklySchedule{
		{DayOfWeek: 0, IsOpen: false},
		{DayOfWeek: 1, IsOpen: true, OpeningTime: "09:00", ClosingTime: "17:00", SlotDurationMinutes: 30},
	}}

	f.uc = NewUseCase(f.bookings, schedule, f.catalog, f.tx, f.events, f.metrics, time.UTC, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) request() *Request {
	return &Request{
		CustomerID:     uuid.New(),
		ServiceID:      f.service,
		ProfessionalID: f.professional,
		Date:           monday,
		StartTime:      "10:00",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(monday.Add(7 * time.Hour))
	notes := "first visit"
	req := f.request()
	req.Notes = &notes

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 85.0, resp.TotalPrice)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, &notes, resp.Notes)
	assert.Equal(t, 1, f.metrics.created)
	require.Len(t, f.events.created, 1)
	assert.Equal(t, resp.ID, f.events.created[0].ID)
}

func TestExecute_DefaultDuration(t *testing.T) {
	f := newFixture(monday)
	f.catalog.services[f.service].DurationMinutes = 0

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
}

func TestExecute_SecondBookingSameSlotConflicts(t *testing.T) {
	f := newFixture(monday)

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestExecute_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f := newFixture(monday)
	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), f.request())
	require.ErrorIs(t, err, domain.ErrSlotConflict)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "CreateBooking", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Len(t, spans[1].Events, 1)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(monday)
	f.bookings.bookings = []*domain.Booking{
		{ID: uuid.New(), ProfessionalID: f.professional, Date: monday, StartTime: "10:00", Status: domain.StatusCancelled},
	}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.NoError(t, err)
}

func TestExecute_SlotNotOffered(t *testing.T) {
	f := newFixture(monday)

	for _, start := range []string{"10:15", "08:30", "17:00"} {
		req := f.request()
		req.StartTime = types.TimeString(start)
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrSlotConflict, start)
	}
}

func TestExecute_ElapsedSlotToday(t *testing.T) {
	f := newFixture(monday.Add(10 * time.Hour))

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(monday)
	req := f.request()
	req.Date = monday.AddDate(0, 0, 6)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrScheduleClosed)

	req.Date = monday.AddDate(0, 0, 1)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrScheduleClosed)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(monday)
	long := strings.Repeat("x", domain.MaxNotesLength+1)

	cases := map[string]func(r *Request){
		"missing customer":     func(r *Request) { r.CustomerID = uuid.Nil },
		"missing service":      func(r *Request) { r.ServiceID = uuid.Nil },
		"missing professional": func(r *Request) { r.ProfessionalID = uuid.Nil },
		"missing date":         func(r *Request) { r.Date = time.Time{} },
		"missing time":         func(r *Request) { r.StartTime = "" },
		"bad time":             func(r *Request) { r.StartTime = "25:99" },
		"long notes":           func(r *Request) { r.Notes = &long },
		"past date":            func(r *Request) { r.Date = monday.AddDate(0, 0, -1) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := f.request()
			mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_CatalogErrors(t *testing.T) {
	f := newFixture(monday)

	req := f.request()
	req.ServiceID = uuid.New()
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	f.catalog.services[f.service].IsActive = false
	_, err = f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrServiceNotFound)
	f.catalog.services[f.service].IsActive = true

	req = f.request()
	req.ProfessionalID = uuid.New()
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_StoreConflictsMapToSlotConflict(t *testing.T) {
	f := newFixture(monday)
	f.bookings.createErr = fmt.Errorf("%w: unique violation", bookingRepo.ErrSlotNotAvailable)

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	f.bookings.createErr = nil
	f.tx.err = fmt.Errorf("%w: commit", txmanager.ErrSerialization)
	_, err = f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Empty(t, f.events.created)
	assert.Equal(t, 2, f.metrics.conflicts)
}

func TestExecute_InternalErrors(t *testing.T) {
	f := newFixture(monday)
	f.bookings.listErr = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInternal)

	f.bookings.listErr = nil
	f.tx.err = errors.New("connection reset")
	_, err = f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInternal)
}
