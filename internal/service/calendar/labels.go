package calendar

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/internal/service/calendar/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type labels struct {
	services      map[uuid.UUID]string
	professionals map[uuid.UUID]string
	customers     map[uuid.UUID]string
}

// loadLabels загружает имена; ошибки справочников заменяются заглушками
func (s *Service) loadLabels(ctx context.Context, bookings []*domain.Booking) *labels {
	l := &labels{
		services:      make(map[uuid.UUID]string),
		professionals: make(map[uuid.UUID]string),
		customers:     make(map[uuid.UUID]string),
	}
	if len(bookings) == 0 {
		return l
	}

	if services, err := s.catalogRepo.GetServices(ctx, false); err != nil {
		s.logger.Warn("Week: %v", fmt.Errorf("%w: services: %v", domain.ErrResolution, err))
	} else {
		for _, svc := range services {
			l.services[svc.ID] = svc.Name
		}
	}

	if professionals, err := s.catalogRepo.GetProfessionals(ctx, false); err != nil {
		s.logger.Warn("Week: %v", fmt.Errorf("%w: professionals: %v", domain.ErrResolution, err))
	} else {
		for _, p := range professionals {
			l.professionals[p.ID] = p.FullName
		}
	}

	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.CustomerID)
	}
	if profiles, err := s.catalogRepo.GetCustomerProfiles(ctx, ids); err != nil {
		s.logger.Warn("Week: %v", fmt.Errorf("%w: customers: %v", domain.ErrResolution, err))
	} else {
		for _, p := range profiles {
			l.customers[p.ID] = p.FullName
		}
	}

	return l
}

func (l *labels) placement(p scheduling.Placement) models.PlacementDTO {
	b := p.Booking
	return models.PlacementDTO{
		BookingID:        b.ID,
		ProfessionalID:   b.ProfessionalID,
		ProfessionalName: lookup(l.professionals, b.ProfessionalID, domain.UnknownProfessional),
		ServiceName:      lookup(l.services, b.ServiceID, domain.UnknownService),
		CustomerName:     lookup(l.customers, b.CustomerID, domain.UnknownCustomer),
		Status:           string(b.Status),
		StartTime:        b.StartTime.String(),
		EndTime:          p.EndTime.String(),
		StartCell:        p.StartCell,
		SpanCells:        p.SpanCells,
		Cells:            timesToStrings(p.Cells),
	}
}

func lookup(names map[uuid.UUID]string, id uuid.UUID, placeholder string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return placeholder
}

func timesToStrings(times []types.TimeString) []string {
	result := make([]string, 0, len(times))
	for _, t := range times {
		result = append(result, t.String())
	}
	return result
}
