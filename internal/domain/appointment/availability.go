package appointment

import (
	"fmt"
	"slices"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Interval is a half-open [Start, End) span of bookable time.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

// Contains reports whether [start, end) lies entirely inside iv.
func (iv Interval) Contains(start, end time.Time) bool {
	return !start.Before(iv.Start) && !end.After(iv.End)
}

// Source names which rule produced a day's intervals.
type Source string

const (
	SourceBlocked  Source = "blocked"
	SourceDaily    Source = "daily"
	SourceExtended Source = "extended"
	SourceWeekly   Source = "weekly"
	SourceNone     Source = "none"
)

type DaySchedule struct {
	Date      string     `json:"date"`
	Source    Source     `json:"source"`
	Intervals []Interval `json:"intervals"`
}

// Blocked reports a day vetoed by a blocked exception.
func (d DaySchedule) Blocked() bool {
	return d.Source == SourceBlocked
}

// Covers reports whether some interval fully contains [start, end).
func (d DaySchedule) Covers(start, end time.Time) bool {
	for _, iv := range d.Intervals {
		if iv.Contains(start, end) {
			return true
		}
	}
	return false
}

// Bounds returns the earliest start and latest end of the schedule.
func (d DaySchedule) Bounds() (time.Time, time.Time, bool) {
	if len(d.Intervals) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return d.Intervals[0].Start, d.Intervals[len(d.Intervals)-1].End, true
}

// DayRules is everything stored for one barber and one calendar date.
type DayRules struct {
	Weekly     []models.WeeklyAvailability
	Daily      []models.DailyAvailability
	Exceptions []models.ScheduleException
}

// ResolveDay turns the stored rules for day into concrete intervals in
// day's location. Precedence is blocked exception, daily rows, extended
// exceptions and finally the weekly template.
func ResolveDay(day time.Time, rules DayRules) DaySchedule {
	loc := day.Location()
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	out := DaySchedule{Date: midnight.Format(DateLayout), Source: SourceNone}

	for _, ex := range rules.Exceptions {
		if ex.Kind == models.ExceptionBlocked {
			out.Source = SourceBlocked
			return out
		}
	}

	var daily []Interval
	for _, row := range rules.Daily {
		if !row.Active {
			continue
		}
		if iv, ok := clockInterval(midnight, row.StartTime, row.EndTime); ok {
			daily = append(daily, iv)
		}
	}
	if len(daily) > 0 {
		out.Source = SourceDaily
		out.Intervals = MergeIntervals(daily)
		return out
	}

	var extended []Interval
	for _, ex := range rules.Exceptions {
		if ex.Kind != models.ExceptionExtended || ex.StartTime == "" || ex.EndTime == "" {
			continue
		}
		if iv, ok := clockInterval(midnight, ex.StartTime, ex.EndTime); ok {
			extended = append(extended, iv)
		}
	}
	if len(extended) > 0 {
		out.Source = SourceExtended
		out.Intervals = MergeIntervals(extended)
		return out
	}

	weekday := int(midnight.Weekday())
	var weekly []Interval
	for _, row := range rules.Weekly {
		if !row.Active || row.Weekday != weekday {
			continue
		}
		weekly = append(weekly, weeklyIntervals(midnight, row)...)
	}
	if len(weekly) > 0 {
		out.Source = SourceWeekly
		out.Intervals = MergeIntervals(weekly)
	}

	return out
}

// weeklyIntervals splits the working window around the lunch break
// when the break falls inside it.
func weeklyIntervals(midnight time.Time, row models.WeeklyAvailability) []Interval {
	work, ok := clockInterval(midnight, row.StartTime, row.EndTime)
	if !ok {
		return nil
	}
	if row.LunchStart == "" || row.LunchEnd == "" {
		return []Interval{work}
	}
	lunch, ok := clockInterval(midnight, row.LunchStart, row.LunchEnd)
	if !ok || !lunch.Start.Before(work.End) || !lunch.End.After(work.Start) {
		return []Interval{work}
	}

	var out []Interval
	if before := (Interval{Start: work.Start, End: lunch.Start}); before.Valid() {
		out = append(out, before)
	}
	if after := (Interval{Start: lunch.End, End: work.End}); after.Valid() {
		out = append(out, after)
	}
	return out
}

// MergeIntervals sorts ivs and joins overlapping or touching entries.
// Empty and inverted intervals are dropped.
func MergeIntervals(ivs []Interval) []Interval {
	valid := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Valid() {
			valid = append(valid, iv)
		}
	}
	slices.SortFunc(valid, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	var out []Interval
	for _, iv := range valid {
		if n := len(out); n > 0 && !iv.Start.After(out[n-1].End) {
			if iv.End.After(out[n-1].End) {
				out[n-1].End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

func clockInterval(midnight time.Time, start, end string) (Interval, bool) {
	s, err := AtClock(midnight, start)
	if err != nil {
		return Interval{}, false
	}
	e, err := AtClock(midnight, end)
	if err != nil {
		return Interval{}, false
	}
	iv := Interval{Start: s, End: e}
	return iv, iv.Valid()
}

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// AtClock places an "HH:MM" wall-clock value on the date of midnight.
// "24:00" means the end of that day.
func AtClock(midnight time.Time, hhmm string) (time.Time, error) {
	if hhmm == "24:00" {
		y, m, d := midnight.Date()
		return time.Date(y, m, d+1, 0, 0, 0, 0, midnight.Location()), nil
	}
	t, err := time.Parse(ClockLayout, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	y, m, d := midnight.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, midnight.Location()), nil
}

// ParseDate reads a YYYY-MM-DD value as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
