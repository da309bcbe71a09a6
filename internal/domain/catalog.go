package domain

import "github.com/google/uuid"

// Service catalog entry offered by the salon
type Service struct {
	ID              uuid.UUID
	Name            string
	Price           float64
	DurationMinutes int
	IsActive        bool
}

// EffectiveDuration returns the configured duration or DefaultDurationMinutes
func (s *Service) EffectiveDuration() int {
	if s.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return s.DurationMinutes
}

// Professional staff member who performs services
type Professional struct {
	ID        uuid.UUID
	FullName  string
	Specialty *string
	IsActive  bool
}

// CustomerProfile public profile of a customer
type CustomerProfile struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Phone    *string
}
