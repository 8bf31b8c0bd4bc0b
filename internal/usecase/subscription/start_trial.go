package subscription

import (
	"context"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/clock"
	domain "github.com/booklyhq/bookly-api/internal/domain/subscription"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

type StartTrial struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher

	amount   float64
	currency string
}

func NewStartTrial(
	repo domain.Repository,
	clk clock.Clock,
	auditd *audit.Dispatcher,
	amount float64,
	currency string,
) *StartTrial {
	return &StartTrial{
		repo:     repo,
		clock:    clk,
		audit:    auditd,
		amount:   amount,
		currency: currency,
	}
}

// Execute starts the one free trial an owner ever gets. It returns
// (nil, nil) when no trial is available — any prior subscription record,
// whatever its status, burns the trial for life — so the caller can route
// to payment.
func (uc *StartTrial) Execute(
	ctx context.Context,
	userID uint,
) (*models.Subscription, error) {

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	if user.Role != models.RoleOwner {
		return nil, nil
	}

	count, err := uc.repo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	now := uc.clock.Now()
	periodStart := now
	periodEnd := now.Add(domain.TrialPeriod)

	sub := &models.Subscription{
		UserID:             userID,
		Status:             string(domain.StatusTrial),
		Amount:             uc.amount,
		Currency:           uc.currency,
		CurrentPeriodStart: &periodStart,
		CurrentPeriodEnd:   &periodEnd,
		TrialEndsAt:        &periodEnd,
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "subscription_trial_started",
		Entity:   "subscription",
		EntityID: &sub.ID,
	})

	return sub, nil
}
