package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/booklyhq/bookly-api/internal/audit"
	"github.com/booklyhq/bookly-api/internal/clock"
	domain "github.com/booklyhq/bookly-api/internal/domain/booking"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
	"github.com/booklyhq/bookly-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID uint
	ClientID  uint

	Date  string
	Time  string
	Notes string
}

// CreateBookingResult carries the calendar emit failure, if any, as a
// non-fatal warning: the booking stands either way.
type CreateBookingResult struct {
	Booking         *models.Booking
	CalendarWarning error
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
	log   *slog.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	clk clock.Clock,
	auditd *audit.Dispatcher,
	log *slog.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		clock: clk,
		audit: auditd,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	loc := timezone.Location(svc.Business.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	now := uc.clock.Now().In(loc)
	if !start.After(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	client, err := uc.repo.GetUser(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	b, err := uc.commitWithRetry(ctx, svc, client, start, end, in.Notes)
	if err != nil {
		return nil, err
	}

	result := &CreateBookingResult{Booking: b}

	// Derived calendar entry, best effort: a failure here is reported to
	// the caller but never rolls back the booking.
	ev := &models.CalendarEvent{
		BusinessID: svc.BusinessID,
		BookingID:  b.ID,
		Title:      svc.Name + " - " + client.Name,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
	}
	if err := uc.repo.CreateCalendarEvent(ctx, ev); err != nil {
		uc.log.Warn("calendar event create failed",
			"booking_id", b.ID, "err", err)
		uc.audit.Dispatch(audit.Event{
			BusinessID: &svc.BusinessID,
			UserID:     &in.ClientID,
			Action:     "calendar_event_failed",
			Entity:     "booking",
			EntityID:   &b.ID,
		})
		result.CalendarWarning = err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &svc.BusinessID,
		UserID:     &in.ClientID,
		Action:     "booking_created",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	return result, nil
}

// commitWithRetry runs the full validate-and-insert pipeline, retrying it
// exactly once when the storage layer reports a lost commit race. The
// second loss surfaces as a plain conflict.
func (uc *CreateBooking) commitWithRetry(
	ctx context.Context,
	svc *models.Service,
	client *models.User,
	start, end time.Time,
	notes string,
) (*models.Booking, error) {

	b, err := uc.validateAndInsert(ctx, svc, client, start, end, notes)
	if !errors.Is(err, domain.ErrWriteConflict) {
		return b, err
	}

	uc.log.Info("booking commit race lost, revalidating",
		"service_id", svc.ID, "start", start)

	b, err = uc.validateAndInsert(ctx, svc, client, start, end, notes)
	if errors.Is(err, domain.ErrWriteConflict) {
		return nil, httperr.ErrBusiness("conflict")
	}
	return b, err
}

func (uc *CreateBooking) validateAndInsert(
	ctx context.Context,
	svc *models.Service,
	client *models.User,
	start, end time.Time,
	notes string,
) (*models.Booking, error) {

	if !domain.WithinBusinessHours(svc.Business.OpenTime, svc.Business.CloseTime, start, end) {
		return nil, httperr.ErrBusiness("hours")
	}

	// Fast-path check on a fresh read. The repository repeats it under a
	// lock; this one only spares a doomed transaction.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	occupied, err := uc.repo.ListBookedIntervals(ctx, svc.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	if domain.HasConflict(start, end, occupied) {
		return nil, httperr.ErrBusiness("conflict")
	}

	b := &models.Booking{
		ServiceID: svc.ID,
		UserID:    client.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     notes,
		Reference: uuid.NewString(),
	}

	if err := uc.repo.CreateBookingInSlot(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}
