package subscription

import (
	"context"
	"errors"

	domain "github.com/booklyhq/bookly-api/internal/domain/subscription"
	"github.com/booklyhq/bookly-api/internal/models"
)

var errNotFound = errors.New("not found")

type fakeRepo struct {
	users  map[uint]*models.User
	subs   []*models.Subscription
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: map[uint]*models.User{
			10: {ID: 10, Name: "Owner", Role: models.RoleOwner},
			20: {ID: 20, Name: "Client", Role: models.RoleClient},
			99: {ID: 99, Name: "Root", Role: models.RoleAdmin},
		},
	}
}

func (f *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) ListForUser(_ context.Context, userID uint) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountForUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, s := range f.subs {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) PaymentRefExists(_ context.Context, ref string) (bool, error) {
	for _, s := range f.subs {
		if s.PaymentRef != "" && s.PaymentRef == ref {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Create(_ context.Context, sub *models.Subscription) error {
	f.nextID++
	sub.ID = f.nextID
	if sub.CreatedAt.IsZero() && sub.CurrentPeriodStart != nil {
		sub.CreatedAt = *sub.CurrentPeriodStart
	}
	cp := *sub
	f.subs = append(f.subs, &cp)
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id uint) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) Update(_ context.Context, sub *models.Subscription) error {
	for i, s := range f.subs {
		if s.ID == sub.ID {
			cp := *sub
			f.subs[i] = &cp
			return nil
		}
	}
	return errNotFound
}

var _ domain.Repository = (*fakeRepo)(nil)
