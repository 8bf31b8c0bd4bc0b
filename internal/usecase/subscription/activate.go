package subscription

import (
	"context"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/clock"
	domain "github.com/booklyhq/bookly-api/internal/domain/subscription"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

type ActivateFromPayment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewActivateFromPayment(
	repo domain.Repository,
	clk clock.Clock,
	auditd *audit.Dispatcher,
) *ActivateFromPayment {
	return &ActivateFromPayment{
		repo:  repo,
		clock: clk,
		audit: auditd,
	}
}

// Execute records a verified payment as a one-month active subscription.
// The caller has already verified the payment with the provider; this only
// guards reference reuse. Amount and currency are stored as verified.
func (uc *ActivateFromPayment) Execute(
	ctx context.Context,
	userID uint,
	paymentRef string,
	amount float64,
	currency string,
) (*models.Subscription, error) {

	if paymentRef == "" {
		return nil, httperr.ErrBusiness("invalid_payment_reference")
	}

	used, err := uc.repo.PaymentRefExists(ctx, paymentRef)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, httperr.ErrBusiness("payment_already_used")
	}

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}
	if user.Role != models.RoleOwner {
		return nil, httperr.ErrBusiness("owner_role_required")
	}

	now := uc.clock.Now()
	periodStart := now
	periodEnd := domain.BillingPeriodEnd(now)

	sub := &models.Subscription{
		UserID:             userID,
		Status:             string(domain.StatusActive),
		Amount:             amount,
		Currency:           currency,
		PaymentRef:         paymentRef,
		CurrentPeriodStart: &periodStart,
		CurrentPeriodEnd:   &periodEnd,
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "subscription_activated",
		Entity:   "subscription",
		EntityID: &sub.ID,
		Metadata: map[string]any{"payment_ref": paymentRef},
	})

	return sub, nil
}
