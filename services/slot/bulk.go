package slot

import (
	"time"

	"campusbook/utils"
)

const (
	bulkDateLayout = "2006-01-02"
	bulkTimeLayout = "15:04"
)

// mondayBasedWeekday maps time.Weekday (Sunday=0) to the Monday=0..Sunday=6
// convention used by the bulk request's repeat mask.
func mondayBasedWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ExpandBulkDates resolves a weekday-masked date range into the concrete
// start/end pairs of each slot to create, in chronological order. The range
// is inclusive on both ends. Times are interpreted in the local zone.
func ExpandBulkDates(startDate, endDate, startTime, endTime string, repeatDays []int) ([][2]time.Time, error) {
	from, err := time.ParseInLocation(bulkDateLayout, startDate, time.Local)
	if err != nil {
		return nil, utils.NewValidationError("invalid startDate %q, want YYYY-MM-DD", startDate)
	}
	to, err := time.ParseInLocation(bulkDateLayout, endDate, time.Local)
	if err != nil {
		return nil, utils.NewValidationError("invalid endDate %q, want YYYY-MM-DD", endDate)
	}
	if to.Before(from) {
		return nil, utils.NewValidationError("endDate must not be before startDate")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, utils.NewValidationError("date range must not exceed one year")
	}

	st, err := time.Parse(bulkTimeLayout, startTime)
	if err != nil {
		return nil, utils.NewValidationError("invalid startTime %q, want HH:MM", startTime)
	}
	et, err := time.Parse(bulkTimeLayout, endTime)
	if err != nil {
		return nil, utils.NewValidationError("invalid endTime %q, want HH:MM", endTime)
	}
	if !st.Before(et) {
		return nil, utils.NewValidationError("startTime must be before endTime")
	}

	if len(repeatDays) == 0 {
		return nil, utils.NewValidationError("repeatDays must name at least one weekday")
	}
	mask := [7]bool{}
	for _, d := range repeatDays {
		if d < 0 || d > 6 {
			return nil, utils.NewValidationError("repeatDays values must be 0 (Monday) through 6 (Sunday)")
		}
		mask[d] = true
	}

	var out [][2]time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !mask[mondayBasedWeekday(day.Weekday())] {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), st.Hour(), st.Minute(), 0, 0, time.Local)
		end := time.Date(day.Year(), day.Month(), day.Day(), et.Hour(), et.Minute(), 0, 0, time.Local)
		out = append(out, [2]time.Time{start, end})
	}
	return out, nil
}
