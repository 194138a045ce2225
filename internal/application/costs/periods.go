package costs

import (
	"fmt"
	"time"

	"github.com/ArthurSampaio13/aws-finops-dashboard/internal/domain/entity"
)

// ComparisonWindows computes the two non-overlapping date windows compared
// by a report, anchored at today.
//
// For a rolling N-day range the current window is [today-N, today] and the
// previous window ends the day before the current one starts and spans the
// same N days. For the default range the current window is the current
// calendar month up to today and the previous window is exactly the
// previous calendar month. Cost Explorer treats the end date as exclusive,
// so on the first day of a month the current end is pushed one day forward
// to keep the window non-empty.
func ComparisonWindows(today time.Time, timeRange entity.TimeRange) (current, previous entity.DateWindow) {
	if timeRange.IsCustom() {
		days := timeRange.Days()
		current.End = today
		current.Start = today.AddDate(0, 0, -days)
		previous.End = current.Start.AddDate(0, 0, -1)
		previous.Start = previous.End.AddDate(0, 0, -days)
		return current, previous
	}

	current.Start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	current.End = today
	if current.Start.Equal(current.End.Truncate(24 * time.Hour)) {
		current.End = current.End.AddDate(0, 0, 1)
	}
	previous.End = current.Start.AddDate(0, 0, -1)
	previous.Start = time.Date(previous.End.Year(), previous.End.Month(), 1, 0, 0, 0, 0, today.Location())
	return current, previous
}

// PeriodNames returns the human-readable labels for both windows,
// e.g. "Current 30 days cost" / "Previous 30 days cost" for a rolling
// range and "Current month's cost" / "Last month's cost" otherwise.
func PeriodNames(timeRange entity.TimeRange) (current, previous string) {
	if timeRange.IsCustom() {
		return fmt.Sprintf("Current %d days cost", timeRange.Days()),
			fmt.Sprintf("Previous %d days cost", timeRange.Days())
	}
	return "Current month's cost", "Last month's cost"
}
