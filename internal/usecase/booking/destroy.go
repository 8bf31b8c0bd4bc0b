package booking

import (
	"context"

	"github.com/booklyhq/bookly-api/internal/audit"
	domain "github.com/booklyhq/bookly-api/internal/domain/booking"
	"github.com/booklyhq/bookly-api/internal/httperr"
)

// DestroyBooking hard-deletes a booking and its derived artifacts. It is an
// administrative override: same authorization as cancel, but no lead-time
// guard. Callers wanting the 24h rule should cancel instead.
type DestroyBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDestroyBooking(
	repo domain.Repository,
	auditd *audit.Dispatcher,
) *DestroyBooking {
	return &DestroyBooking{
		repo:  repo,
		audit: auditd,
	}
}

func (uc *DestroyBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actorID uint,
	role string,
) error {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return httperr.ErrBusiness("not_found")
	}

	if !canManage(b, actorID, role) {
		return httperr.ErrBusiness("unauthorized")
	}

	if err := uc.repo.DeleteBooking(ctx, b); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &b.Service.BusinessID,
		UserID:     &actorID,
		Action:     "booking_destroyed",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	return nil
}
