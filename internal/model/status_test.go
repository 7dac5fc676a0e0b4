package model

import (
	"errors"
	"testing"
)

func TestParseReservationStatus(t *testing.T) {
	cases := []struct {
		in   string
		want ReservationStatus
	}{
		{"PENDING", StatusPending},
		{"approved", StatusApproved},
		{"Rejected", StatusRejected},
		{"canceled", StatusCanceled},
		{"VISITED", StatusVisited},
		{"no_show", StatusNoShow},
		{"  visited  ", StatusVisited},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseReservationStatus(tc.in)
			if err != nil {
				t.Fatalf("ParseReservationStatus(%q): unexpected error %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseReservationStatus(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseReservationStatusUnknown(t *testing.T) {
	for _, in := range []string{"BOGUS", "", "pending!", "done"} {
		if _, err := ParseReservationStatus(in); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseReservationStatus(%q) error = %v, want ErrUnknownStatus", in, err)
		}
	}
}
