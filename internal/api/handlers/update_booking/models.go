package update_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	updateBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	ServiceID      string `json:"serviceId"`
	ProfessionalID string `json:"professionalId"`
	BookingDate    string `json:"bookingDate"`
	StartTime      string `json:"startTime"`
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
	UpdatedAt       string  `json:"updatedAt"`
}

type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.field, e.err)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, userID uuid.UUID) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
	}

	var err error
	if r.ServiceID != "" {
		if req.ServiceID, err = uuid.Parse(r.ServiceID); err != nil {
			return nil, &fieldError{field: "serviceId", err: err}
		}
	}
	if r.ProfessionalID != "" {
		if req.ProfessionalID, err = uuid.Parse(r.ProfessionalID); err != nil {
			return nil, &fieldError{field: "professionalId", err: err}
		}
	}
	if r.BookingDate != "" {
		if req.Date, err = time.Parse(domain.DateFormat, r.BookingDate); err != nil {
			return nil, &fieldError{field: "bookingDate", err: err}
		}
	}
	if r.StartTime != "" {
		if req.StartTime, err = types.NewTimeStringFromString(r.StartTime); err != nil {
			return nil, &fieldError{field: "startTime", err: err}
		}
	}

	return req, nil
}

func fromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
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
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
