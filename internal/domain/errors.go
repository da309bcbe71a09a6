package domain

import "errors"

var (
	// ErrScheduleClosed the requested weekday is closed
	ErrScheduleClosed = errors.New("domain: salon is closed on this day")

	// ErrSlotConflict the slot is already held by another active booking
	ErrSlotConflict = errors.New("domain: slot is no longer available")

	// ErrInvalidTransition the status change violates the booking lifecycle
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrValidation required booking or schedule fields are missing or malformed
	ErrValidation = errors.New("domain: validation failed")

	// ErrResolution a referenced service, professional or customer was not found
	ErrResolution = errors.New("domain: reference cannot be resolved")
)
