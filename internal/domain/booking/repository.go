package booking

import (
	"context"
	"errors"
	"time"

	"github.com/booklyhq/bookly-api/internal/models"
)

// ErrWriteConflict is returned by CreateBookingInSlot when the insert lost
// the commit race for an overlapping interval. The create use case retries
// validation once on it.
var ErrWriteConflict = errors.New("booking write conflict")

type Repository interface {
	// -------- Service / Business --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Booking (create / conflict) --------

	// ListBookedIntervals returns the occupied intervals for a service whose
	// start falls in [start, end). Cancelled bookings are excluded.
	ListBookedIntervals(
		ctx context.Context,
		serviceID uint,
		start time.Time,
		end time.Time,
	) ([]Interval, error)

	// CreateBookingInSlot performs the authoritative conflict check and the
	// insert as one atomic unit with respect to other writers on the same
	// service. It returns a "conflict" business error when the slot is
	// already taken, and ErrWriteConflict when the insert lost the race
	// after a clean check.
	CreateBookingInSlot(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Calendar --------
	CreateCalendarEvent(
		ctx context.Context,
		ev *models.CalendarEvent,
	) error

	// -------- Listing --------
	ListBookingsForBusiness(
		ctx context.Context,
		businessID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)
}
