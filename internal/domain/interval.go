package domain

import "time"

// Interval is a half-open time interval [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [s1,e1) and [s2,e2) share any instant: s1 < e2 && s2 < e1.
// Touching intervals (e1 == s2) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns End - Start
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsOrdered returns true if Start is strictly before End
func (i Interval) IsOrdered() bool {
	return i.Start.Before(i.End)
}

// DayOf returns the calendar day containing t in loc
func DayOf(t time.Time, loc *time.Location) Interval {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}
