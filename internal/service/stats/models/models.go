package models

import "github.com/google/uuid"

// DashboardResponse сводка для панели администратора
type DashboardResponse struct {
	TotalBookings   int     `json:"totalBookings"`
	PendingBookings int     `json:"pendingBookings"`
	TodayBookings   int     `json:"todayBookings"`
	TotalRevenue    float64 `json:"totalRevenue"`
	MonthRevenue    float64 `json:"monthRevenue"`
	TotalCustomers  int     `json:"totalCustomers"`
}

// CustomerStats статистика одного клиента
type CustomerStats struct {
	CustomerID      uuid.UUID `json:"customerId"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	BookingsCount   int       `json:"bookingsCount"`
	TotalSpent      float64   `json:"totalSpent"`
	LastBookingDate *string   `json:"lastBookingDate,omitempty"` // "2025-10-15"
}

// CustomerStatsResponse список статистики по клиентам
type CustomerStatsResponse struct {
	Customers []CustomerStats `json:"customers"`
}
