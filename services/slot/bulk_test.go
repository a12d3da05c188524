package slot

import (
	"testing"
	"time"

	"campusbook/utils"
)

func TestExpandBulkDates(t *testing.T) {
	tests := []struct {
		name       string
		startDate  string
		endDate    string
		startTime  string
		endTime    string
		repeatDays []int
		wantCount  int
	}{
		{
			name:      "monday and wednesday over two weeks",
			startDate: "2026-09-07", // a Monday
			endDate:   "2026-09-18",
			startTime: "10:00", endTime: "11:00",
			repeatDays: []int{0, 2},
			wantCount:  4,
		},
		{
			name:      "every day for one week",
			startDate: "2026-09-07",
			endDate:   "2026-09-13",
			startTime: "09:00", endTime: "09:30",
			repeatDays: []int{0, 1, 2, 3, 4, 5, 6},
			wantCount:  7,
		},
		{
			name:      "single day matching mask",
			startDate: "2026-09-11", // a Friday
			endDate:   "2026-09-11",
			startTime: "14:00", endTime: "15:00",
			repeatDays: []int{4},
			wantCount:  1,
		},
		{
			name:      "single day not matching mask",
			startDate: "2026-09-11",
			endDate:   "2026-09-11",
			startTime: "14:00", endTime: "15:00",
			repeatDays: []int{0},
			wantCount:  0,
		},
		{
			name:      "sunday uses index six",
			startDate: "2026-09-07",
			endDate:   "2026-09-13",
			startTime: "08:00", endTime: "08:30",
			repeatDays: []int{6},
			wantCount:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandBulkDates(tt.startDate, tt.endDate, tt.startTime, tt.endTime, tt.repeatDays)
			if err != nil {
				t.Fatalf("ExpandBulkDates() error = %v", err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("ExpandBulkDates() produced %d windows, want %d", len(got), tt.wantCount)
			}
			for i, w := range got {
				if !w[0].Before(w[1]) {
					t.Errorf("window %d: start %v not before end %v", i, w[0], w[1])
				}
				if i > 0 && !got[i-1][0].Before(w[0]) {
					t.Errorf("window %d out of chronological order", i)
				}
			}
		})
	}
}

func TestExpandBulkDatesAppliesClockTimes(t *testing.T) {
	got, err := ExpandBulkDates("2026-09-07", "2026-09-07", "10:30", "11:45", []int{0})
	if err != nil {
		t.Fatalf("ExpandBulkDates() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one window, got %d", len(got))
	}
	start, end := got[0][0], got[0][1]
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start clock = %02d:%02d, want 10:30", start.Hour(), start.Minute())
	}
	if end.Hour() != 11 || end.Minute() != 45 {
		t.Errorf("end clock = %02d:%02d, want 11:45", end.Hour(), end.Minute())
	}
	if start.Weekday() != time.Monday {
		t.Errorf("start weekday = %v, want Monday", start.Weekday())
	}
}

func TestExpandBulkDatesValidation(t *testing.T) {
	tests := []struct {
		name       string
		startDate  string
		endDate    string
		startTime  string
		endTime    string
		repeatDays []int
	}{
		{"bad start date", "09/07/2026", "2026-09-18", "10:00", "11:00", []int{0}},
		{"bad end date", "2026-09-07", "next friday", "10:00", "11:00", []int{0}},
		{"end before start", "2026-09-18", "2026-09-07", "10:00", "11:00", []int{0}},
		{"range over a year", "2026-09-07", "2027-09-18", "10:00", "11:00", []int{0}},
		{"bad start time", "2026-09-07", "2026-09-18", "10am", "11:00", []int{0}},
		{"start time not before end", "2026-09-07", "2026-09-18", "11:00", "11:00", []int{0}},
		{"empty repeat days", "2026-09-07", "2026-09-18", "10:00", "11:00", nil},
		{"weekday out of range", "2026-09-07", "2026-09-18", "10:00", "11:00", []int{7}},
		{"negative weekday", "2026-09-07", "2026-09-18", "10:00", "11:00", []int{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandBulkDates(tt.startDate, tt.endDate, tt.startTime, tt.endTime, tt.repeatDays)
			if err == nil {
				t.Fatal("ExpandBulkDates() expected an error")
			}
			if !utils.HasCode(err, utils.CodeValidation) {
				t.Errorf("error code = %v, want validation_error", err)
			}
		})
	}
}

func TestMondayBasedWeekday(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}
	for _, tt := range tests {
		if got := mondayBasedWeekday(tt.day); got != tt.want {
			t.Errorf("mondayBasedWeekday(%v) = %d, want %d", tt.day, got, tt.want)
		}
	}
}
