package booking

import (
	"context"
	"testing"
	"time"

	"github.com/booklyhq/bookly-api/internal/clock"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

// seedBooking plants a pending booking directly in the fake store.
func seedBooking(repo *fakeRepo, userID uint, start time.Time) *models.Booking {
	repo.nextID++
	b := &models.Booking{
		ID:        repo.nextID,
		ServiceID: repo.service.ID,
		UserID:    userID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    "pending",
	}
	repo.bookings = append(repo.bookings, b)
	return b
}

func TestCancelBooking_LeadTimeBoundary(t *testing.T) {
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	clk := clock.Fixed{T: now}

	repo := newFakeRepo()
	uc := NewCancelBooking(repo, clk, nil)

	// Exactly 24h away: too late already.
	exact := seedBooking(repo, 20, now.Add(24*time.Hour))
	_, err := uc.Execute(context.Background(), exact.ID, 20, models.RoleClient)
	if !httperr.IsBusiness(err, "too_late") {
		t.Fatalf("expected too_late at exactly 24h, got %v", err)
	}

	// One minute past the boundary: allowed.
	open := seedBooking(repo, 20, now.Add(24*time.Hour+time.Minute))
	b, err := uc.Execute(context.Background(), open.ID, 20, models.RoleClient)
	if err != nil {
		t.Fatalf("cancel just outside the window: %v", err)
	}
	if b.Status != "cancelled" || b.CancelledAt == nil {
		t.Fatal("cancellation must set status and timestamp")
	}
}

func TestCancelBooking_Authorization(t *testing.T) {
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	clk := clock.Fixed{T: now}

	repo := newFakeRepo()
	uc := NewCancelBooking(repo, clk, nil)

	b := seedBooking(repo, 20, now.Add(48*time.Hour))

	// A stranger cannot cancel.
	repo.users[30] = &models.User{ID: 30, Name: "Stranger", Role: models.RoleClient}
	_, err := uc.Execute(context.Background(), b.ID, 30, models.RoleClient)
	if !httperr.IsBusiness(err, "unauthorized") {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// The business owner can.
	if _, err := uc.Execute(context.Background(), b.ID, 10, models.RoleOwner); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}
}

func TestCancelBooking_AdminBypassesOwnership(t *testing.T) {
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	clk := clock.Fixed{T: now}

	repo := newFakeRepo()
	repo.users[99] = &models.User{ID: 99, Name: "Root", Role: models.RoleAdmin}
	uc := NewCancelBooking(repo, clk, nil)

	b := seedBooking(repo, 20, now.Add(48*time.Hour))
	if _, err := uc.Execute(context.Background(), b.ID, 99, models.RoleAdmin); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestCancelBooking_DoubleCancel(t *testing.T) {
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	clk := clock.Fixed{T: now}

	repo := newFakeRepo()
	uc := NewCancelBooking(repo, clk, nil)

	b := seedBooking(repo, 20, now.Add(48*time.Hour))
	if _, err := uc.Execute(context.Background(), b.ID, 20, models.RoleClient); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err := uc.Execute(context.Background(), b.ID, 20, models.RoleClient)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state on double cancel, got %v", err)
	}
}

func TestCancelBooking_NotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCancelBooking(repo, clock.Fixed{T: time.Now()}, nil)

	_, err := uc.Execute(context.Background(), 4040, 20, models.RoleClient)
	if !httperr.IsBusiness(err, "not_found") {
		t.Fatalf("expected not_found, got %v", err)
	}
}
