package subscription

import (
	"context"

	"github.com/booklyhq/bookly-api/internal/models"
)

type Repository interface {
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Subscription, error)

	// CountForUser counts every subscription the user ever held, any
	// status. The lifetime one-trial rule hangs off this.
	CountForUser(
		ctx context.Context,
		userID uint,
	) (int64, error)

	PaymentRefExists(
		ctx context.Context,
		ref string,
	) (bool, error)

	Create(
		ctx context.Context,
		s *models.Subscription,
	) error

	Get(
		ctx context.Context,
		id uint,
	) (*models.Subscription, error)

	Update(
		ctx context.Context,
		s *models.Subscription,
	) error
}
