package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the HTTP layer can map it to a
// status code without inspecting messages.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindConflict
	KindPermission
	KindInternal
)

// Error is a typed domain error. Code identifies the failure, Message
// is safe to return to clients, Err carries the wrapped cause if any.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two apperr values by Code so sentinels survive wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a sentinel without mutating it.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err, or a generic one.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// Sentinels for every domain failure the services can report.
var (
	ErrSlotNotFound     = New(KindNotFound, "slot_not_found", "Slot with this id doesn't exist.")
	ErrCinemaNotFound   = New(KindNotFound, "cinema_not_found", "Cinema with this id doesn't exist.")
	ErrMovieNotFound    = New(KindNotFound, "movie_not_found", "Movie with this id doesn't exist.")
	ErrLocationNotFound = New(KindNotFound, "location_not_found", "Location with this id doesn't exist.")
	ErrBookingNotFound  = New(KindNotFound, "booking_not_found", "This booking or booking with this user does not exist.")

	ErrInvalidSeat       = New(KindValidation, "invalid_seat", "One or more seat IDs do not exist or do not belong to this cinema.")
	ErrPastSchedule      = New(KindValidation, "slot_past_schedule", "Cannot schedule a showtime in the past.")
	ErrUnreleasedMovie   = New(KindValidation, "invalid_slot_date", "Cannot schedule a slot for an unreleased movie.")
	ErrAlreadyCancelled  = New(KindValidation, "booking_cancelled", "This booking is already cancelled.")
	ErrInvalidDateFormat = New(KindValidation, "invalid_date_format", "Invalid date format (YYYY-MM-DD).")

	ErrSeatAlreadyBooked = New(KindConflict, "booked_seat", "One or more seats are already booked.")
	ErrSlotOverlaps      = New(KindConflict, "slot_overlaps", "This slot overlaps with another slot in the same cinema.")
	ErrLocationExists    = New(KindConflict, "location_exists", "Location with this city already exists.")
	ErrCinemaExists      = New(KindConflict, "cinema_exists", "Cinema with this name already exists in this location.")
	ErrMovieExists       = New(KindConflict, "movie_exists", "Movie with this name already exists.")

	ErrPastSlotSeats   = New(KindPermission, "past_slot_seats", "Past slot seats cannot be checked.")
	ErrPastSlotBooking = New(KindPermission, "past_slot_booking", "Past slots cannot be booked.")
	ErrPastBookingEdit = New(KindPermission, "past_booking", "Past bookings cannot be cancelled.")
)
