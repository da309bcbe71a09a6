package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DayScheduleDTO расписание одного дня недели (0 = воскресенье)
type DayScheduleDTO struct {
	DayOfWeek           int     `json:"dayOfWeek"`
	IsOpen              bool    `json:"isOpen"`
	OpeningTime         *string `json:"openingTime,omitempty"` // "09:00"
	ClosingTime         *string `json:"closingTime,omitempty"` // "17:00"
	SlotDurationMinutes int     `json:"slotDurationMinutes"`
}

// WeekResponse недельное расписание
type WeekResponse struct {
	Days []DayScheduleDTO `json:"days"`
}

// UpdateWeekRequest запрос на замену недельного расписания
type UpdateWeekRequest struct {
	UserID uuid.UUID        `json:"-"`
	Days   []DayScheduleDTO `json:"days"`
}

// ToDomain конвертирует запрос в доменное расписание
func (r *UpdateWeekRequest) ToDomain() (domain.WeeklySchedule, error) {
	week := make(domain.WeeklySchedule, 0, len(r.Days))

	for _, d := range r.Days {
		day := domain.DaySchedule{
			DayOfWeek:           d.DayOfWeek,
			IsOpen:              d.IsOpen,
			SlotDurationMinutes: d.SlotDurationMinutes,
		}

		// у закрытого дня время не учитывается
		if !d.IsOpen {
			week = append(week, day)
			continue
		}

		if d.OpeningTime != nil {
			t, err := types.NewTimeStringFromString(*d.OpeningTime)
			if err != nil {
				return nil, fmt.Errorf("%w: day %d openingTime: %v", domain.ErrValidation, d.DayOfWeek, err)
			}
			day.OpeningTime = t
		}

		if d.ClosingTime != nil {
			t, err := types.NewTimeStringFromString(*d.ClosingTime)
			if err != nil {
				return nil, fmt.Errorf("%w: day %d closingTime: %v", domain.ErrValidation, d.DayOfWeek, err)
			}
			day.ClosingTime = t
		}

		week = append(week, day)
	}

	return week, nil
}

// FromDomainWeek конвертирует доменное расписание в DTO
func FromDomainWeek(week domain.WeeklySchedule) *WeekResponse {
	resp := &WeekResponse{Days: make([]DayScheduleDTO, 0, len(week))}

	for _, d := range week {
		dto := DayScheduleDTO{
			DayOfWeek:           d.DayOfWeek,
			IsOpen:              d.IsOpen,
			SlotDurationMinutes: d.SlotDurationMinutes,
		}
		if !d.OpeningTime.IsZero() {
			dto.OpeningTime = ptr.Ptr(d.OpeningTime.String())
		}
		if !d.ClosingTime.IsZero() {
			dto.ClosingTime = ptr.Ptr(d.ClosingTime.String())
		}
		resp.Days = append(resp.Days, dto)
	}

	return resp
}
