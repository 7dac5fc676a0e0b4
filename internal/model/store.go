package model

import "time"

// Store is a merchant location owned by a partner user.  No two stores may
// share the same name and address pair.  AverageRating is a denormalized
// cache recomputed from the store's reviews on every review write; it
// defaults to 0 when no reviews exist.
//
// Fields:
//
//	ID            – primary key identifier.
//	OwnerID       – partner user who operates the store.
//	Name          – display name, mirrored into the autocomplete index.
//	Address       – street address; part of the uniqueness key with Name.
//	Description   – free-text description.
//	AverageRating – mean of current review scores on the 0.0–5.0 scale.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Store struct {
	ID            uint64    `json:"id"`
	OwnerID       uint64    `json:"owner_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Description   string    `json:"description"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the given user operates this store.
func (s *Store) IsOwnedBy(userID uint64) bool { return s.OwnerID == userID }
