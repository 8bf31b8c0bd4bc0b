package booking

import (
	"context"
	"time"

	"github.com/booklyhq/bookly-api/internal/clock"
	domain "github.com/booklyhq/bookly-api/internal/domain/booking"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewGetAvailability(repo domain.Repository, clk clock.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clk}
}

// Execute recomputes the free slots of a service for one calendar date.
// The result is a best-effort snapshot; the create path re-validates.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	serviceID uint,
	date string,
) ([]domain.Slot, error) {

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	loc := timezone.Location(svc.Business.Timezone)

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	occupied, err := uc.repo.ListBookedIntervals(ctx, svc.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().In(loc)
	duration := time.Duration(svc.DurationMin) * time.Minute

	return domain.AvailableSlots(
		svc.Business.OpenTime,
		svc.Business.CloseTime,
		duration,
		occupied,
		day,
		now,
	), nil
}
