package get_catalog

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
}

type ProfessionalResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Specialty *string   `json:"specialty,omitempty"`
}

func fromServices(services []*domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.EffectiveDuration(),
		})
	}
	return out
}

func fromProfessionals(professionals []*domain.Professional) []ProfessionalResponse {
	out := make([]ProfessionalResponse, 0, len(professionals))
	for _, p := range professionals {
		out = append(out, ProfessionalResponse{
			ID:        p.ID,
			FullName:  p.FullName,
			Specialty: p.Specialty,
		})
	}
	return out
}
