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

type CancelBooking struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	clk clock.Clock,
	auditd *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		clock: clk,
		audit: auditd,
	}
}

// canManage is the shared authorization rule for cancel and destroy: the
// booking's client, the owner of the service's business, or an admin.
func canManage(b *models.Booking, actorID uint, role string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return b.UserID == actorID || b.Service.Business.UserID == actorID
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actorID uint,
	role string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	if !canManage(b, actorID, role) {
		return nil, httperr.ErrBusiness("unauthorized")
	}

	loc := timezone.Location(b.Service.Business.Timezone)
	now := uc.clock.Now().In(loc)

	// Cancellation closes no earlier than 24h before start: a booking
	// starting exactly 24h from now is already too late.
	if !b.StartTime.After(now.Add(domain.CancellationLeadTime)) {
		return nil, httperr.ErrBusiness("too_late")
	}

	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &b.Service.BusinessID,
		UserID:     &actorID,
		Action:     "booking_cancelled",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	return b, nil
}
