package subscription

import (
	"testing"
	"time"

	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

func sub(status string, end time.Time, created time.Time) models.Subscription {
	return models.Subscription{
		Status:           status,
		CurrentPeriodEnd: &end,
		CreatedAt:        created,
	}
}

func TestIsValid_ComputedExpiry(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	live := sub(string(StatusActive), now.Add(time.Hour), now)
	if !IsValid(&live, now) {
		t.Fatal("active with future period end must be valid")
	}

	// Stored status still says active but the period lapsed.
	stale := sub(string(StatusActive), now.Add(-time.Minute), now)
	if IsValid(&stale, now) {
		t.Fatal("lapsed period must invalidate regardless of stored status")
	}

	cancelled := sub(string(StatusCancelled), now.Add(time.Hour), now)
	if IsValid(&cancelled, now) {
		t.Fatal("cancelled is never valid")
	}

	pastDue := sub(string(StatusPastDue), now.Add(time.Hour), now)
	if IsValid(&pastDue, now) {
		t.Fatal("past_due is never valid")
	}

	noEnd := models.Subscription{Status: string(StatusTrial)}
	if IsValid(&noEnd, now) {
		t.Fatal("missing period end must not be valid")
	}
}

func TestCurrent_MostRecentValidWins(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	older := sub(string(StatusTrial), now.Add(time.Hour), now.Add(-48*time.Hour))
	newer := sub(string(StatusActive), now.Add(time.Hour), now.Add(-time.Hour))
	lapsed := sub(string(StatusActive), now.Add(-time.Hour), now)

	cur := Current([]models.Subscription{older, lapsed, newer}, now)
	if cur == nil {
		t.Fatal("expected a current subscription")
	}
	if cur.Status != string(StatusActive) || !cur.CreatedAt.Equal(newer.CreatedAt) {
		t.Fatal("most recently created valid subscription must win")
	}

	if Current([]models.Subscription{lapsed}, now) != nil {
		t.Fatal("only lapsed rows means no current subscription")
	}
	if Current(nil, now) != nil {
		t.Fatal("no rows means no current subscription")
	}
}

func TestEntitled_Roles(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	if !Entitled(models.RoleAdmin, nil, now) {
		t.Fatal("admins are always entitled")
	}
	if !Entitled(models.RoleClient, nil, now) {
		t.Fatal("clients never need a subscription")
	}
	if Entitled(models.RoleOwner, nil, now) {
		t.Fatal("owner without subscription must not be entitled")
	}

	valid := sub(string(StatusTrial), now.Add(time.Hour), now)
	if !Entitled(models.RoleOwner, []models.Subscription{valid}, now) {
		t.Fatal("owner with valid trial must be entitled")
	}

	lapsed := sub(string(StatusTrial), now.Add(-time.Hour), now)
	if Entitled(models.RoleOwner, []models.Subscription{lapsed}, now) {
		t.Fatal("owner with lapsed trial must lose entitlement")
	}

	if Entitled("ghost", []models.Subscription{valid}, now) {
		t.Fatal("unknown role must not be entitled")
	}
}

func TestCancel_Transitions(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	s := sub(string(StatusActive), now.Add(time.Hour), now)
	if err := Cancel(&s, now); err != nil {
		t.Fatalf("cancel active: %v", err)
	}
	if s.Status != string(StatusCancelled) || s.CancelledAt == nil {
		t.Fatal("cancel must set status and timestamp")
	}

	if err := Cancel(&s, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state on double cancel, got %v", err)
	}

	expired := sub(string(StatusExpired), now, now)
	if err := Cancel(&expired, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state cancelling expired, got %v", err)
	}
}

func TestMarkPastDue(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	s := sub(string(StatusActive), now.Add(time.Hour), now)
	if err := MarkPastDue(&s); err != nil {
		t.Fatalf("mark past due: %v", err)
	}
	if s.Status != string(StatusPastDue) {
		t.Fatalf("expected past_due, got %s", s.Status)
	}

	trial := sub(string(StatusTrial), now.Add(time.Hour), now)
	if err := MarkPastDue(&trial); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state for trial, got %v", err)
	}
}
