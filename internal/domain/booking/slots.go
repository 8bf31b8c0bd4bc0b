package booking

import "time"

// Candidate starts step forward in fixed 30-minute increments from the open
// time, regardless of service duration.
const SlotStep = 30 * time.Minute

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailableSlots enumerates the free slots of a calendar date, ascending by
// start time. A slot is returned iff it fits fully before closing, is
// strictly in the future, and does not overlap any occupied interval.
// Results must not be cached: both now and the occupied set move
// continuously.
func AvailableSlots(open, close string, duration time.Duration, existing []Interval, date, now time.Time) []Slot {
	if duration <= 0 {
		return nil
	}

	openMin, ok := parseClock(open)
	if !ok {
		return nil
	}
	closeMin, ok := parseClock(close)
	if !ok {
		return nil
	}
	if closeMin <= openMin {
		return nil
	}

	loc := date.Location()
	dayOpen := time.Date(date.Year(), date.Month(), date.Day(), openMin/60, openMin%60, 0, 0, loc)
	dayClose := time.Date(date.Year(), date.Month(), date.Day(), closeMin/60, closeMin%60, 0, 0, loc)

	var slots []Slot
	for cur := dayOpen; !cur.Add(duration).After(dayClose); cur = cur.Add(SlotStep) {
		if !cur.After(now) {
			continue
		}
		end := cur.Add(duration)
		if HasConflict(cur, end, existing) {
			continue
		}
		slots = append(slots, Slot{Start: cur, End: end})
	}

	return slots
}
