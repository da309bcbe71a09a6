package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID uuid.UUID `json:"userId"`
	Status string    `json:"status"`
}

// DeleteBookingRequest запрос на удаление бронирования
type DeleteBookingRequest struct {
	UserID  uuid.UUID `json:"userId"`
	Confirm bool      `json:"confirm"`
}

// AdminBookingsRequest запрос списка бронирований для админки
type AdminBookingsRequest struct {
	UserID     uuid.UUID  `json:"userId"`
	Status     *string    `json:"status,omitempty"`     // Фильтр по статусу (опционально)
	CustomerID *uuid.UUID `json:"customerId,omitempty"` // Фильтр по клиенту (опционально)
	Search     string     `json:"search,omitempty"`     // Имя/email клиента или название услуги
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *AdminBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CustomerID: r.CustomerID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}

	if r.Status != nil && *r.Status != "" && *r.Status != "all" {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customerId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	ProfessionalID  uuid.UUID `json:"professionalId"`
	BookingDate     string    `json:"bookingDate"` // "2025-10-15"
	StartTime       string    `json:"startTime"`   // "10:00"
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	TotalPrice      float64   `json:"totalPrice"`
	Notes           *string   `json:"notes,omitempty"`

	// Денормализованные данные
	ServiceName      string  `json:"serviceName"`
	ProfessionalName string  `json:"professionalName"`
	CustomerName     string  `json:"customerName,omitempty"`
	CustomerEmail    string  `json:"customerEmail,omitempty"`
	CustomerPhone    *string `json:"customerPhone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		ServiceID:       b.ServiceID,
		ProfessionalID:  b.ProfessionalID,
		BookingDate:     b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		TotalPrice:      b.TotalPrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// MatchesSearch проверяет вхождение строки поиска (без учета регистра)
// в имя или email клиента либо в название услуги
func (r *BookingResponse) MatchesSearch(search string) bool {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return true
	}

	for _, field := range []string{r.CustomerName, r.CustomerEmail, r.ServiceName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
