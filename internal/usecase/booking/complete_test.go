package booking

import (
	"context"
	"testing"
	"time"

	"github.com/booklyhq/bookly-api/internal/clock"
	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

func TestCompleteBooking_AfterEnd(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := NewCompleteBooking(repo, clock.Fixed{T: now}, nil)

	b := seedBooking(repo, 20, now.Add(-time.Hour)) // ended 11:30

	got, err := uc.Execute(context.Background(), b.ID, 10, models.RoleOwner)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != "completed" || got.CompletedAt == nil {
		t.Fatal("completion must set status and timestamp")
	}
}

func TestCompleteBooking_NotElapsed(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := NewCompleteBooking(repo, clock.Fixed{T: now}, nil)

	b := seedBooking(repo, 20, now.Add(time.Hour))
	_, err := uc.Execute(context.Background(), b.ID, 10, models.RoleOwner)
	if !httperr.IsBusiness(err, "not_elapsed") {
		t.Fatalf("expected not_elapsed, got %v", err)
	}

	// Ending exactly now counts as elapsed.
	edge := seedBooking(repo, 20, now.Add(-30*time.Minute))
	if _, err := uc.Execute(context.Background(), edge.ID, 10, models.RoleOwner); err != nil {
		t.Fatalf("complete at exact end: %v", err)
	}
}

func TestCompleteBooking_ClientCannotComplete(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := NewCompleteBooking(repo, clock.Fixed{T: now}, nil)

	b := seedBooking(repo, 20, now.Add(-time.Hour))
	_, err := uc.Execute(context.Background(), b.ID, 20, models.RoleClient)
	if !httperr.IsBusiness(err, "unauthorized") {
		t.Fatalf("expected unauthorized for the client, got %v", err)
	}
}

func TestDestroyBooking_NoTimeGuard(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := NewDestroyBooking(repo, nil)

	// Starts in ten minutes; cancel would refuse, destroy does not.
	b := seedBooking(repo, 20, now.Add(10*time.Minute))
	if err := uc.Execute(context.Background(), b.ID, 10, models.RoleOwner); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if len(repo.bookings) != 0 {
		t.Fatal("destroy must remove the booking")
	}
}

func TestDestroyBooking_Authorization(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.users[30] = &models.User{ID: 30, Name: "Stranger", Role: models.RoleClient}
	uc := NewDestroyBooking(repo, nil)

	b := seedBooking(repo, 20, now.Add(time.Hour))
	err := uc.Execute(context.Background(), b.ID, 30, models.RoleClient)
	if !httperr.IsBusiness(err, "unauthorized") {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
