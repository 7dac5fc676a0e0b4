package model

import "time"

// MaxReviewContentLen bounds the free-text body of a review.
const MaxReviewContentLen = 500

// Review is a post-visit rating of a store.  A review can only exist for a
// reservation in VISITED state, must be written by the reservation's
// customer, and at most one review exists per reservation.  The rating is
// stored as the 0–10 unit (see Rating); RatingScore exposes the 0.0–5.0
// display value.
//
// Fields:
//
//	ID            – primary key identifier.
//	AuthorID      – user who wrote the review (the reservation's customer).
//	StoreID       – store being reviewed.
//	ReservationID – visited reservation this review is bound to (unique).
//	Content       – optional text, at most MaxReviewContentLen characters.
//	Rating        – half-point score.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Review struct {
	ID            uint64    `json:"id"`
	AuthorID      uint64    `json:"author_id"`
	StoreID       uint64    `json:"store_id"`
	ReservationID uint64    `json:"reservation_id"`
	Content       string    `json:"content"`
	Rating        Rating    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RatingScore returns the review's score on the 0.0–5.0 scale.
func (r *Review) RatingScore() float64 { return r.Rating.Score() }
