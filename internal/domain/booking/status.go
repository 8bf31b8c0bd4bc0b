package booking

import (
	"time"

	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// CancellationLeadTime is the minimum gap between now and the booking start
// for a cancellation to be accepted.
const CancellationLeadTime = 24 * time.Hour

func InitialStatus() Status {
	return StatusPending
}

// HoldsSlot reports whether a booking in this status occupies its interval
// for conflict purposes. Only cancellation frees a slot.
func HoldsSlot(s Status) bool {
	return s != StatusCancelled
}

// ===============================
// Transitions
// ===============================

// CanCancel rejects cancellation from terminal states.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete rejects completion from terminal states.
func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
