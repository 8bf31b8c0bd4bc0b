package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/booklyhq/bookly-api/internal/domain/subscription"
	"github.com/booklyhq/bookly-api/internal/models"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) *SubscriptionGormRepository {
	return &SubscriptionGormRepository{db: db}
}

func (r *SubscriptionGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SubscriptionGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Subscription, error) {

	var subs []models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error

	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriptionGormRepository) CountForUser(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}

func (r *SubscriptionGormRepository) PaymentRefExists(
	ctx context.Context,
	ref string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("payment_ref = ?", ref).
		Count(&count).Error

	return count > 0, err
}

func (r *SubscriptionGormRepository) Create(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) Update(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

var _ domain.Repository = (*SubscriptionGormRepository)(nil)
