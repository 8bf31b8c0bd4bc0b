package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/booklyhq/bookly-api/internal/clock"
)

func TestCheckEntitlement_OwnerLifecycle(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()

	check := func(clk clock.Clock, want bool, msg string) {
		t.Helper()
		uc := NewCheckEntitlement(repo, clk)
		got, err := uc.Execute(context.Background(), 10)
		if err != nil {
			t.Fatalf("%s: %v", msg, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v", msg, want)
		}
	}

	check(clock.Fixed{T: now}, false, "owner without subscription")

	trial := NewStartTrial(repo, clock.Fixed{T: now}, nil, 99.00, "SAR")
	if sub, err := trial.Execute(context.Background(), 10); err != nil || sub == nil {
		t.Fatalf("start trial: sub=%v err=%v", sub, err)
	}

	check(clock.Fixed{T: now.Add(time.Hour)}, true, "owner inside trial")

	// Entitlement decays the instant the period lapses; nothing is written.
	check(clock.Fixed{T: now.Add(15 * 24 * time.Hour)}, false, "owner after trial expiry")

	// Paying restores it for a month.
	activate := NewActivateFromPayment(repo, clock.Fixed{T: now.Add(16 * 24 * time.Hour)}, nil)
	if _, err := activate.Execute(context.Background(), 10, "pay-1", 99.00, "SAR"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	check(clock.Fixed{T: now.Add(17 * 24 * time.Hour)}, true, "owner after payment")
	check(clock.Fixed{T: now.Add(60 * 24 * time.Hour)}, false, "owner after paid period lapsed")
}

func TestCheckEntitlement_ExemptRoles(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()

	uc := NewCheckEntitlement(repo, clock.Fixed{T: now})

	for _, id := range []uint{20, 99} { // client, admin
		got, err := uc.Execute(context.Background(), id)
		if err != nil {
			t.Fatalf("entitlement for user %d: %v", id, err)
		}
		if !got {
			t.Fatalf("user %d must be entitled without a subscription", id)
		}
	}
}
