package booking

import "time"

// parseClock turns a "15:04" string into minutes past midnight.
func parseClock(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WithinBusinessHours reports whether [start, end) fits inside the daily
// operating window. Comparison is on minute-of-day only; the date is used
// solely to reject intervals crossing midnight. Unset, malformed, or
// inverted hours mean the business is never open.
func WithinBusinessHours(open, close string, start, end time.Time) bool {
	openMin, ok := parseClock(open)
	if !ok {
		return false
	}
	closeMin, ok := parseClock(close)
	if !ok {
		return false
	}
	if closeMin <= openMin {
		return false
	}

	if !end.After(start) || !sameDay(start, end) {
		return false
	}

	return minuteOfDay(start) >= openMin && minuteOfDay(end) <= closeMin
}
