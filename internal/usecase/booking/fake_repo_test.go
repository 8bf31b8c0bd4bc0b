package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/booklyhq/bookly-api/internal/domain/booking"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

var errNotFound = errors.New("not found")

// fakeRepo is an in-memory stand-in for the gorm repository. It reproduces
// the same conflict contract: a locked-check failure is a business conflict,
// a simulated lost insert race is ErrWriteConflict.
type fakeRepo struct {
	mu sync.Mutex

	service  *models.Service
	business *models.Business
	users    map[uint]*models.User

	bookings []*models.Booking
	events   []*models.CalendarEvent
	nextID   uint

	// pendingRaces makes the next N inserts fail as lost commit races.
	pendingRaces int
	calendarErr  error
}

func newFakeRepo() *fakeRepo {
	biz := &models.Business{
		ID:        1,
		UserID:    10,
		Name:      "Lumen Studio",
		OpenTime:  "09:00",
		CloseTime: "18:00",
		Timezone:  "UTC",
	}
	return &fakeRepo{
		service: &models.Service{
			ID:          1,
			BusinessID:  biz.ID,
			Business:    *biz,
			Name:        "Consultation",
			DurationMin: 30,
			Price:       50,
		},
		business: biz,
		users: map[uint]*models.User{
			10: {ID: 10, Name: "Owner", Role: models.RoleOwner},
			20: {ID: 20, Name: "Client", Role: models.RoleClient},
		},
		nextID: 100,
	}
}

func (f *fakeRepo) GetService(_ context.Context, serviceID uint) (*models.Service, error) {
	if f.service == nil || f.service.ID != serviceID {
		return nil, errNotFound
	}
	svc := *f.service
	return &svc, nil
}

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, errNotFound
	}
	biz := *f.business
	return &biz, nil
}

func (f *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) ListBookedIntervals(
	_ context.Context,
	serviceID uint,
	start, end time.Time,
) ([]domain.Interval, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Interval
	for _, b := range f.bookings {
		if b.ServiceID != serviceID {
			continue
		}
		if !domain.HoldsSlot(domain.Status(b.Status)) {
			continue
		}
		if b.StartTime.Before(start) || !b.StartTime.Before(end) {
			continue
		}
		out = append(out, domain.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return out, nil
}

func (f *fakeRepo) CreateBookingInSlot(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ex := range f.bookings {
		if ex.ServiceID != b.ServiceID {
			continue
		}
		if !domain.HoldsSlot(domain.Status(ex.Status)) {
			continue
		}
		if domain.Overlaps(b.StartTime, b.EndTime, ex.StartTime, ex.EndTime) {
			return httperr.ErrBusiness("conflict")
		}
	}

	if f.pendingRaces > 0 {
		f.pendingRaces--
		return domain.ErrWriteConflict
	}

	f.nextID++
	b.ID = f.nextID
	cp := *b
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f *fakeRepo) GetBooking(_ context.Context, bookingID uint) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == bookingID {
			cp := *b
			cp.Service = *f.service
			cp.Service.Business = *f.business
			if u, ok := f.users[b.UserID]; ok {
				cp.User = *u
			}
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	for i, ex := range f.bookings {
		if ex.ID == b.ID {
			cp := *b
			f.bookings[i] = &cp
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) DeleteBooking(_ context.Context, b *models.Booking) error {
	for i, ex := range f.bookings {
		if ex.ID == b.ID {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) CreateCalendarEvent(_ context.Context, ev *models.CalendarEvent) error {
	if f.calendarErr != nil {
		return f.calendarErr
	}
	cp := *ev
	f.events = append(f.events, &cp)
	return nil
}

func (f *fakeRepo) ListBookingsForBusiness(
	_ context.Context,
	businessID uint,
	start, end time.Time,
) ([]models.Booking, error) {

	var out []models.Booking
	for _, b := range f.bookings {
		if f.service.BusinessID != businessID {
			continue
		}
		if b.StartTime.Before(start) || !b.StartTime.Before(end) {
			continue
		}
		cp := *b
		cp.Service = *f.service
		if u, ok := f.users[b.UserID]; ok {
			cp.User = *u
		}
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForUser(
	_ context.Context,
	userID uint,
) ([]models.Booking, error) {

	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
