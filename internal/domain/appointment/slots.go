package appointment

import (
	"slices"
	"time"
)

// DefaultSlotStep is the grid candidate start times are placed on.
const DefaultSlotStep = 15 * time.Minute

// Booked is a confirmed reservation as stored, without its buffer.
type Booked struct {
	Start time.Time
	End   time.Time
}

// Collides reports whether a reservation occupying [start, start+span)
// overlaps b once b is extended by buffer.
func (b Booked) Collides(start time.Time, span, buffer time.Duration) bool {
	end := start.Add(span)
	return start.Before(b.End.Add(buffer)) && end.After(b.Start)
}

type SlotQuery struct {
	Schedule DaySchedule
	Span     time.Duration // service duration plus buffer
	Buffer   time.Duration
	Booked   []Booked
	Now      time.Time
	Step     time.Duration
}

// GenerateSlots lists every start time whose span fits inside one of the
// schedule's intervals without touching a buffered reservation.
func GenerateSlots(q SlotQuery) []time.Time {
	step := q.Step
	if step <= 0 {
		step = DefaultSlotStep
	}
	if q.Span <= 0 {
		return nil
	}

	seen := make(map[int64]struct{})
	var out []time.Time

	for _, iv := range q.Schedule.Intervals {
		t := iv.Start
		if !q.Now.IsZero() && t.Before(q.Now) {
			if !iv.End.After(q.Now) {
				continue
			}
			t = alignUp(q.Now, iv.Start, step)
		}

		for !t.Add(q.Span).After(iv.End) {
			if next, hit := nextFree(t, q.Span, q.Buffer, q.Booked); hit {
				if !next.After(t) {
					next = t.Add(step)
				}
				t = next
				continue
			}

			key := t.UnixNano()
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				out = append(out, t)
			}
			t = t.Add(step)
		}
	}

	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// HasConflict reports whether [start, start+span) collides with any of booked.
func HasConflict(start time.Time, span, buffer time.Duration, booked []Booked) bool {
	_, hit := nextFree(start, span, buffer, booked)
	return hit
}

// nextFree returns the end of the latest colliding reservation plus buffer.
func nextFree(t time.Time, span, buffer time.Duration, booked []Booked) (time.Time, bool) {
	var next time.Time
	hit := false
	for _, b := range booked {
		if !b.Collides(t, span, buffer) {
			continue
		}
		if end := b.End.Add(buffer); !hit || end.After(next) {
			next = end
		}
		hit = true
	}
	return next, hit
}

// alignUp rounds t up to the next step boundary counted from origin.
func alignUp(t, origin time.Time, step time.Duration) time.Time {
	d := t.Sub(origin)
	if d <= 0 {
		return origin
	}
	n := (d + step - 1) / step
	return origin.Add(n * step)
}
