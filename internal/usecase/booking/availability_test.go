package booking

import (
	"context"
	"testing"
	"time"

	"github.com/booklyhq/bookly-api/internal/clock"
	"github.com/booklyhq/bookly-api/internal/httperr"
)

func TestGetAvailability_ReflectsBookings(t *testing.T) {
	now := time.Date(2026, 9, 13, 8, 0, 0, 0, time.UTC) // day before
	repo := newFakeRepo()
	uc := NewGetAvailability(repo, clock.Fixed{T: now})

	booked := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	seedBooking(repo, 20, booked)

	slots, err := uc.Execute(context.Background(), 1, "2026-09-14")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	// 09:00-18:00 with 30-minute service is 18 candidates, one booked.
	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Start.Equal(booked) {
			t.Fatal("booked slot must not be offered")
		}
	}
}

func TestGetAvailability_CancelledBookingFreesSlot(t *testing.T) {
	now := time.Date(2026, 9, 13, 8, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := NewGetAvailability(repo, clock.Fixed{T: now})

	b := seedBooking(repo, 20, time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC))
	b.Status = "cancelled"

	slots, err := uc.Execute(context.Background(), 1, "2026-09-14")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(slots) != 18 {
		t.Fatalf("cancelled booking must free its slot, got %d slots", len(slots))
	}
}

func TestGetAvailability_SameDayFiltersPast(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 10, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := NewGetAvailability(repo, clock.Fixed{T: now})

	slots, err := uc.Execute(context.Background(), 1, "2026-09-14")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	// First candidate after 12:10 is 12:30; through 17:30 that is 11 slots.
	if len(slots) != 11 {
		t.Fatalf("expected 11 remaining slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(time.Date(2026, 9, 14, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("expected first slot 12:30, got %s", slots[0].Start)
	}
}

func TestGetAvailability_Errors(t *testing.T) {
	now := time.Date(2026, 9, 13, 8, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	uc := NewGetAvailability(repo, clock.Fixed{T: now})

	if _, err := uc.Execute(context.Background(), 404, "2026-09-14"); !httperr.IsBusiness(err, "not_found") {
		t.Fatalf("expected not_found, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), 1, "garbage"); !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("expected invalid_date, got %v", err)
	}
}
