package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest проверяет, что все обязательные поля выбраны
func validateRequest(req *Request) error {
	if req.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customerId is required", domain.ErrValidation)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", domain.ErrValidation)
	}

	if req.ProfessionalID == uuid.Nil {
		return fmt.Errorf("%w: professionalId is required", domain.ErrValidation)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", domain.ErrValidation)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", domain.ErrValidation, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", domain.ErrValidation, domain.MaxNotesLength)
	}

	return nil
}

// validateDate отклоняет даты раньше сегодняшней
func validateDate(date, now time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: date %s is in the past", domain.ErrValidation, date.Format(domain.DateFormat))
	}
	return nil
}
