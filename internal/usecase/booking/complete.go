package booking

import (
	"context"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/clock"
	domain "github.com/booklyhq/bookly-api/internal/domain/booking"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
	"github.com/booklyhq/bookly-api/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	clk clock.Clock,
	auditd *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		clock: clk,
		audit: auditd,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actorID uint,
	role string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	// Completion is the owner's (or admin's) call, not the client's.
	if role != models.RoleAdmin && b.Service.Business.UserID != actorID {
		return nil, httperr.ErrBusiness("unauthorized")
	}

	loc := timezone.Location(b.Service.Business.Timezone)
	now := uc.clock.Now().In(loc)

	if now.Before(b.EndTime) {
		return nil, httperr.ErrBusiness("not_elapsed")
	}

	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &b.Service.BusinessID,
		UserID:     &actorID,
		Action:     "booking_completed",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	return b, nil
}
