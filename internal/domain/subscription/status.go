package subscription

import (
	"time"

	"github.com/booklyhq/bookly-api/internal/httperr"
	"github.com/booklyhq/bookly-api/internal/models"
)

// ===============================
// Subscription Status
// ===============================

type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

const TrialPeriod = 14 * 24 * time.Hour

// BillingPeriodEnd returns the end of a paid period starting at now.
func BillingPeriodEnd(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

// ===============================
// Read-side rules
// ===============================

// IsValid reports whether the subscription grants entitlement right now.
// A row whose stored status still reads trial/active but whose period has
// lapsed is not valid; expiry is computed on read, never written back.
func IsValid(s *models.Subscription, now time.Time) bool {
	st := Status(s.Status)
	if st != StatusTrial && st != StatusActive {
		return false
	}
	return s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.After(now)
}

// IsEnded is the implicit expired overlay on top of the stored status.
func IsEnded(s *models.Subscription, now time.Time) bool {
	st := Status(s.Status)
	if st == StatusCancelled || st == StatusExpired {
		return true
	}
	return s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.Before(now)
}

// Current picks the authoritative subscription when several rows qualify:
// the most recently created valid one. Returns nil when none is valid.
func Current(subs []models.Subscription, now time.Time) *models.Subscription {
	var cur *models.Subscription
	for i := range subs {
		s := &subs[i]
		if !IsValid(s, now) {
			continue
		}
		if cur == nil || s.CreatedAt.After(cur.CreatedAt) {
			cur = s
		}
	}
	return cur
}

// Entitled decides whether a user may publish bookable inventory. Admins
// and clients never need a subscription; owners need a currently valid one.
func Entitled(role string, subs []models.Subscription, now time.Time) bool {
	switch role {
	case models.RoleAdmin, models.RoleClient:
		return true
	case models.RoleOwner:
		return Current(subs, now) != nil
	default:
		return false
	}
}

// ===============================
// Transitions
// ===============================

func Cancel(s *models.Subscription, now time.Time) error {
	st := Status(s.Status)
	if st == StatusCancelled || st == StatusExpired {
		return httperr.ErrBusiness("invalid_state")
	}

	s.Status = string(StatusCancelled)
	s.CancelledAt = &now
	return nil
}

func MarkPastDue(s *models.Subscription) error {
	if Status(s.Status) != StatusActive {
		return httperr.ErrBusiness("invalid_state")
	}

	s.Status = string(StatusPastDue)
	return nil
}
