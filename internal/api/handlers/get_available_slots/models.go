package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProfessionalID string   `json:"professionalId"`
	Date           string   `json:"date"`
	Closed         bool     `json:"closed"`
	Slots          []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &AvailableSlotsResponse{
		ProfessionalID: resp.ProfessionalID.String(),
		Date:           resp.Date.Format(domain.DateFormat),
		Closed:         resp.Closed,
		Slots:          slots,
	}
}
