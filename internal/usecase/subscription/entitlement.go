package subscription

import (
	"context"

	"github.com/booklyhq/bookly-api/internal/clock"
	domain "github.com/booklyhq/bookly-api/internal/domain/subscription"
	"github.com/booklyhq/bookly-api/internal/httperr"
)

type CheckEntitlement struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewCheckEntitlement(repo domain.Repository, clk clock.Clock) *CheckEntitlement {
	return &CheckEntitlement{repo: repo, clock: clk}
}

// Execute decides whether the user may publish bookable inventory right
// now. Validity is computed against the clock on every call; a stored
// status is never trusted past its period end.
func (uc *CheckEntitlement) Execute(
	ctx context.Context,
	userID uint,
) (bool, error) {

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return false, httperr.ErrBusiness("not_found")
	}

	subs, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return false, err
	}

	return domain.Entitled(user.Role, subs, uc.clock.Now()), nil
}
