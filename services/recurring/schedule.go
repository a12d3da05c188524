package recurring

import (
	"time"

	"campusbook/models"
)

// advance steps the cursor by one cadence interval. Monthly steps move by a
// calendar month, so Jan 31 → Mar 3 on non-leap years follows time.AddDate's
// normalization.
func advance(cursor time.Time, t models.RecurrenceType) time.Time {
	switch t {
	case models.RecurrenceWeekly:
		return cursor.AddDate(0, 0, 7)
	case models.RecurrenceBiweekly:
		return cursor.AddDate(0, 0, 14)
	case models.RecurrenceMonthly:
		return cursor.AddDate(0, 1, 0)
	}
	return cursor
}

// SeriesDates expands a cadence into the start times of every occurrence,
// beginning at the origin slot's own start and stepping while the cursor
// stays on or before endDate. The origin date is included; the caller's
// existing-slot check is what keeps it from being recreated.
func SeriesDates(start time.Time, t models.RecurrenceType, endDate time.Time) []time.Time {
	if !t.Valid() {
		return nil
	}
	var dates []time.Time
	for cursor := start; !cursor.After(endDate); cursor = advance(cursor, t) {
		dates = append(dates, cursor)
	}
	return dates
}
