package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID      string  `json:"serviceId"`
	ProfessionalID string  `json:"professionalId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string  `json:"id"`
	CustomerID      string  `json:"customerId"`
	ServiceID       string  `json:"serviceId"`
	ProfessionalID  string  `json:"professionalId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// parseError ошибка разбора конкретного поля запроса
type parseError struct {
	field string
	err   error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s: %v", e.field, e.err)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Пустые идентификаторы остаются uuid.Nil и отклоняются валидацией use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID uuid.UUID) (*createBooking.Request, error) {
	req := &createBooking.Request{
		CustomerID: customerID,
		Notes:      r.Notes,
	}

	var err error
	if r.ServiceID != "" {
		if req.ServiceID, err = uuid.Parse(r.ServiceID); err != nil {
			return nil, &parseError{field: "serviceId", err: err}
		}
	}
	if r.ProfessionalID != "" {
		if req.ProfessionalID, err = uuid.Parse(r.ProfessionalID); err != nil {
			return nil, &parseError{field: "professionalId", err: err}
		}
	}
	if r.BookingDate != "" {
		if req.Date, err = time.Parse(domain.DateFormat, r.BookingDate); err != nil {
			return nil, &parseError{field: "bookingDate", err: err}
		}
	}
	if r.StartTime != "" {
		if req.StartTime, err = types.NewTimeStringFromString(r.StartTime); err != nil {
			return nil, &parseError{field: "startTime", err: err}
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID.String(),
		CustomerID:      resp.CustomerID.String(),
		ServiceID:       resp.ServiceID.String(),
		ProfessionalID:  resp.ProfessionalID.String(),
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		TotalPrice:      resp.TotalPrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
