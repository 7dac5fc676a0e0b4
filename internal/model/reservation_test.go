package model

import (
	"testing"
	"time"
)

func TestCanCheckIn(t *testing.T) {
	scheduled := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		status ReservationStatus
		now    time.Time
		want   bool
	}{
		{"window start inclusive", StatusApproved, scheduled.Add(-10 * time.Minute), true},
		{"inside window", StatusApproved, scheduled.Add(-5 * time.Minute), true},
		{"one second before end", StatusApproved, scheduled.Add(-time.Second), true},
		{"exactly at scheduled time", StatusApproved, scheduled, false},
		{"after scheduled time", StatusApproved, scheduled.Add(time.Minute), false},
		{"too early", StatusApproved, scheduled.Add(-11 * time.Minute), false},
		{"pending inside window", StatusPending, scheduled.Add(-5 * time.Minute), false},
		{"canceled inside window", StatusCanceled, scheduled.Add(-5 * time.Minute), false},
		{"visited inside window", StatusVisited, scheduled.Add(-5 * time.Minute), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Reservation{ScheduledTime: scheduled, Status: tc.status}
			if got := r.CanCheckIn(tc.now); got != tc.want {
				t.Errorf("CanCheckIn(%v) with status %s = %v, want %v", tc.now, tc.status, got, tc.want)
			}
		})
	}
}

func TestCheckInWindow(t *testing.T) {
	scheduled := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	r := Reservation{ScheduledTime: scheduled}
	start, end := r.CheckInWindow()
	if want := scheduled.Add(-CheckInLeadTime); !start.Equal(want) {
		t.Errorf("window start = %v, want %v", start, want)
	}
	if !end.Equal(scheduled) {
		t.Errorf("window end = %v, want %v", end, scheduled)
	}
}
