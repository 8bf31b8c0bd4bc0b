package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/booklyhq/bookly-api/internal/domain/booking"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service / Business / User
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Business").
		First(&svc, serviceID).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookedIntervals(
	ctx context.Context,
	serviceID uint,
	start time.Time,
	end time.Time,
) ([]domain.Interval, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"service_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			serviceID, "cancelled", start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, domain.Interval{
			Start: b.StartTime,
			End:   b.EndTime,
		})
	}
	return intervals, nil
}

// CreateBookingInSlot repeats the conflict check under a row lock and
// inserts in the same transaction, so two overlapping commits for one
// service serialize: the loser sees either the locked rows (conflict) or,
// if it raced past them, the exclusion constraint (write conflict, retried
// by the caller).
func (r *BookingGormRepository) CreateBookingInSlot(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"service_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				b.ServiceID, "cancelled", b.EndTime, b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("conflict")
		}

		return tx.Create(b).Error
	})

	if httperr.IsExclusionConflict(err) {
		return domain.ErrWriteConflict
	}
	return err
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Business").
		Preload("User").
		First(&b, bookingID).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	// Calendar events and queue tickets go with it via FK cascade.
	return r.db.WithContext(ctx).Delete(b).Error
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *BookingGormRepository) CreateCalendarEvent(
	ctx context.Context,
	ev *models.CalendarEvent,
) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForBusiness(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where(
			"services.business_id = ? AND bookings.start_time >= ? AND bookings.start_time < ?",
			businessID, start, end,
		).
		Order("bookings.start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Business").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
