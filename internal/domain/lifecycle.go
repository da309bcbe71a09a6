package domain

import "fmt"

// transitions lists every legal status change. Terminal statuses have no entry.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for completed and cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo returns true if the lifecycle allows moving from s to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition for an illegal status change
func ValidateTransition(from, to BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// CanBeEdited returns true while date, time, service and professional may change
func (b *Booking) CanBeEdited() bool {
	return b.IsActive()
}

// CanBeDeleted returns true once the booking reached a terminal status
func (b *Booking) CanBeDeleted() bool {
	return b.Status.IsTerminal()
}

// IsRevenueEligible returns true if the booking counts towards revenue
func (b *Booking) IsRevenueEligible() bool {
	return b.Status == StatusCompleted
}
