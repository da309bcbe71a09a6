package domain

// Default values
const (
	// DefaultDurationMinutes applies when a service has no configured duration
	DefaultDurationMinutes = 120

	DefaultCalendarStart       = "09:00"
	DefaultCalendarEnd         = "20:00"
	DefaultCalendarCellMinutes = 30
)

const (
	MaxNotesLength = 500
	DaysInWeek     = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Placeholder labels for references that cannot be resolved
const (
	UnknownService      = "Unknown Service"
	UnknownProfessional = "Unknown Professional"
	UnknownCustomer     = "Unknown Customer"
)

// ActiveStatuses statuses that hold a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// StatusPriority ordering for staff views, lower comes first
var StatusPriority = map[BookingStatus]int{
	StatusPending:   1,
	StatusConfirmed: 2,
	StatusCompleted: 3,
	StatusCancelled: 4,
}
