package model

import (
	"errors"
	"testing"
)

func TestRatingFromScoreLadder(t *testing.T) {
	// Every half-point from 0.0 to 5.0 is valid and round-trips exactly.
	for unit := 0; unit <= 10; unit++ {
		score := float64(unit) / 2
		r, err := RatingFromScore(score)
		if err != nil {
			t.Fatalf("RatingFromScore(%v): unexpected error %v", score, err)
		}
		if r.Unit() != unit {
			t.Errorf("RatingFromScore(%v).Unit() = %d, want %d", score, r.Unit(), unit)
		}
		if r.Score() != score {
			t.Errorf("RatingFromScore(%v).Score() = %v, want %v", score, r.Score(), score)
		}
	}
}

func TestRatingFromScoreRejectsOffLadder(t *testing.T) {
	cases := []struct {
		name  string
		score float64
	}{
		{"between steps", 0.3},
		{"above max", 5.5},
		{"negative", -1.0},
		{"just above max", 5.0001},
		{"tiny fraction", 4.51},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RatingFromScore(tc.score); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("RatingFromScore(%v) error = %v, want ErrInvalidRating", tc.score, err)
			}
		})
	}
}

func TestRatingFromUnit(t *testing.T) {
	for unit := 0; unit <= 10; unit++ {
		r, err := RatingFromUnit(unit)
		if err != nil {
			t.Fatalf("RatingFromUnit(%d): unexpected error %v", unit, err)
		}
		if got := r.Score(); got != float64(unit)/2 {
			t.Errorf("RatingFromUnit(%d).Score() = %v, want %v", unit, got, float64(unit)/2)
		}
	}
	for _, unit := range []int{-1, 11, 100} {
		if _, err := RatingFromUnit(unit); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("RatingFromUnit(%d) error = %v, want ErrInvalidRating", unit, err)
		}
	}
}

func TestRatingString(t *testing.T) {
	r, err := RatingFromScore(4.5)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.String(); got != "4.5" {
		t.Errorf("String() = %q, want %q", got, "4.5")
	}
}
