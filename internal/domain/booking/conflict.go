package booking

import "time"

// Interval is an occupied [Start, End) slot. Callers populate these from
// bookings that still hold their slot, i.e. everything not cancelled.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps is the half-open interval test: touching endpoints do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func HasConflict(start, end time.Time, existing []Interval) bool {
	for _, iv := range existing {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
