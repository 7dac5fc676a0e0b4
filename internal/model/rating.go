package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRating is returned when a review score does not land exactly on
// the half-point ladder {0.0, 0.5, 1.0, ..., 5.0}.
var ErrInvalidRating = errors.New("invalid rating")

// Rating is a review score on the half-point ladder between 0.0 and 5.0.
// Internally it is held as an integer unit in [0,10] — twice the score — so
// the database can store it in a TINYINT column without any floating point
// drift.  The unit is the only representation that ever reaches storage;
// everything above the repository layer works with the 0.0–5.0 score.  Both
// conversions are exact: no value outside the ladder is ever produced or
// accepted.
type Rating struct {
	unit int
}

// RatingFromScore converts a 0.0–5.0 score into a Rating.  Scores off the
// half-point ladder (e.g. 0.3, 5.5, -1.0) are rejected with ErrInvalidRating.
func RatingFromScore(score float64) (Rating, error) {
	doubled := score * 2
	unit := int(doubled)
	if float64(unit) != doubled || unit < 0 || unit > 10 {
		return Rating{}, fmt.Errorf("%w: %v is not a half-point value between 0.0 and 5.0", ErrInvalidRating, score)
	}
	return Rating{unit: unit}, nil
}

// RatingFromUnit converts a stored unit in [0,10] back into a Rating.  Units
// outside that range indicate a corrupt row and are rejected.
func RatingFromUnit(unit int) (Rating, error) {
	if unit < 0 || unit > 10 {
		return Rating{}, fmt.Errorf("%w: stored unit %d outside [0,10]", ErrInvalidRating, unit)
	}
	return Rating{unit: unit}, nil
}

// Score returns the rating on the 0.0–5.0 display scale.
func (r Rating) Score() float64 { return float64(r.unit) / 2 }

// Unit returns the integer storage form in [0,10].
func (r Rating) Unit() int { return r.unit }

// String renders the score with one decimal, e.g. "4.5".
func (r Rating) String() string { return fmt.Sprintf("%.1f", r.Score()) }
