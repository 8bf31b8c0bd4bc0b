package subscription

import (
	"context"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/clock"
	domain "github.com/booklyhq/bookly-api/internal/domain/subscription"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

type CancelSubscription struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCancelSubscription(
	repo domain.Repository,
	clk clock.Clock,
	auditd *audit.Dispatcher,
) *CancelSubscription {
	return &CancelSubscription{
		repo:  repo,
		clock: clk,
		audit: auditd,
	}
}

func (uc *CancelSubscription) Execute(
	ctx context.Context,
	subscriptionID uint,
	actorID uint,
	role string,
) (*models.Subscription, error) {

	sub, err := uc.repo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	if sub.UserID != actorID && role != models.RoleAdmin {
		return nil, httperr.ErrBusiness("unauthorized")
	}

	now := uc.clock.Now()
	if err := domain.Cancel(sub, now); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "subscription_cancelled",
		Entity:   "subscription",
		EntityID: &sub.ID,
	})

	return sub, nil
}
