package entity

import (
	"fmt"
	"time"
)

// TimeRange selects how the two comparison windows of a report are computed:
// the zero value compares the current calendar month against the previous
// one, while LastNDays compares two adjacent rolling windows of N days.
// Modeling this as a closed variant instead of a nullable day count keeps
// both window-computation branches explicit.
type TimeRange struct {
	days int
}

// DefaultTimeRange returns the calendar-month comparison range.
func DefaultTimeRange() TimeRange {
	return TimeRange{}
}

// LastNDays returns a rolling range of the given number of days.
// Non-positive values fall back to the default calendar-month range.
func LastNDays(days int) TimeRange {
	if days <= 0 {
		return TimeRange{}
	}
	return TimeRange{days: days}
}

// IsCustom reports whether this is a rolling N-day range rather than the
// default calendar-month comparison.
func (t TimeRange) IsCustom() bool {
	return t.days > 0
}

// Days returns the rolling window length, or 0 for the default range.
func (t TimeRange) Days() int {
	return t.days
}

// DateWindow is a date range [Start, End] used for a billing query.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Label renders the window as "2006-01-02 to 2006-01-02" for headers.
func (w DateWindow) Label() string {
	return fmt.Sprintf("%s to %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}
