package models

import "github.com/google/uuid"

// PlacementDTO бронирование в сетке календаря
type PlacementDTO struct {
	BookingID        uuid.UUID `json:"bookingId"`
	ProfessionalID   uuid.UUID `json:"professionalId"`
	ProfessionalName string    `json:"professionalName"`
	ServiceName      string    `json:"serviceName"`
	CustomerName     string    `json:"customerName"`
	Status           string    `json:"status"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	StartCell        int       `json:"startCell"` // -1 если вне сетки
	SpanCells        int       `json:"spanCells"`
	Cells            []string  `json:"cells"`
}

// DayDTO один день календаря
type DayDTO struct {
	Date     string         `json:"date"` // "2025-10-15"
	Bookings []PlacementDTO `json:"bookings"`
}

// WeekResponse календарь на 7 дней
type WeekResponse struct {
	WeekStart   string   `json:"weekStart"`
	CellMinutes int      `json:"cellMinutes"`
	Cells       []string `json:"cells"`
	Days        []DayDTO `json:"days"`
}
