package service

import "errors"

// Business errors surfaced to the HTTP boundary. All are terminal for the
// request except ErrLockTimeout, which is safe to retry because nothing
// committed.
var (
	ErrInvalidInterval        = errors.New("start time must be before end time")
	ErrDuplicateSlot          = errors.New("slot already exists for the given time")
	ErrOverlappingSlot        = errors.New("slot time overlaps with existing slot")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrSlotAlreadyBooked      = errors.New("slot already booked")
	ErrUserNotFound           = errors.New("user not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingAlreadyCanceled = errors.New("booking already canceled")
	ErrNotBookingOwner        = errors.New("you can cancel only your own booking")
	ErrEmailTaken             = errors.New("user already exists with this email")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrLockTimeout            = errors.New("slot is being booked by another request, try again")
)
