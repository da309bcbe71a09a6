package bookings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// directory справочники, загруженные один раз на запрос
type directory struct {
	services      map[uuid.UUID]*domain.Service
	professionals map[uuid.UUID]*domain.Professional
	customers     map[uuid.UUID]*domain.CustomerProfile
}

// loadDirectory загружает справочники для обогащения
// Ошибки не прерывают выдачу: недостающие имена заменяются заглушками
func (s *Service) loadDirectory(ctx context.Context, bookings []*domain.Booking, withCustomers bool) *directory {
	dir := &directory{
		services:      make(map[uuid.UUID]*domain.Service),
		professionals: make(map[uuid.UUID]*domain.Professional),
		customers:     make(map[uuid.UUID]*domain.CustomerProfile),
	}

	if len(bookings) == 0 {
		return dir
	}

	services, err := s.catalogRepo.GetServices(ctx, false)
	if err != nil {
		s.logger.Warn("loadDirectory: %v", fmt.Errorf("%w: services: %v", domain.ErrResolution, err))
	}
	for _, svc := range services {
		dir.services[svc.ID] = svc
	}

	professionals, err := s.catalogRepo.GetProfessionals(ctx, false)
	if err != nil {
		s.logger.Warn("loadDirectory: %v", fmt.Errorf("%w: professionals: %v", domain.ErrResolution, err))
	}
	for _, p := range professionals {
		dir.professionals[p.ID] = p
	}

	if withCustomers {
		profiles, err := s.catalogRepo.GetCustomerProfiles(ctx, customerIDs(bookings))
		if err != nil {
			s.logger.Warn("loadDirectory: %v", fmt.Errorf("%w: customers: %v", domain.ErrResolution, err))
		}
		for _, p := range profiles {
			dir.customers[p.ID] = p
		}
	}

	return dir
}

func (d *directory) enrich(b *domain.Booking, withCustomer bool) models.BookingResponse {
	resp := *models.FromDomainBooking(b)

	resp.ServiceName = domain.UnknownService
	if svc, ok := d.services[b.ServiceID]; ok {
		resp.ServiceName = svc.Name
	}

	resp.ProfessionalName = domain.UnknownProfessional
	if p, ok := d.professionals[b.ProfessionalID]; ok {
		resp.ProfessionalName = p.FullName
	}

	if withCustomer {
		resp.CustomerName = domain.UnknownCustomer
		if c, ok := d.customers[b.CustomerID]; ok {
			resp.CustomerName = c.FullName
			resp.CustomerEmail = c.Email
			resp.CustomerPhone = c.Phone
		}
	}

	return resp
}

func customerIDs(bookings []*domain.Booking) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(bookings))
	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.CustomerID]; ok {
			continue
		}
		seen[b.CustomerID] = struct{}{}
		ids = append(ids, b.CustomerID)
	}
	return ids
}
