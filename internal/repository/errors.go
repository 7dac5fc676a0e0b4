// Package repository contains the data access layer.  This file defines
// sentinel error values shared across repositories so that handlers can
// distinguish failure scenarios without inspecting SQL errors: not-found
// sentinels map to 404, ErrForbidden to 403 and ErrConflict to 409.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else: a store they do not operate, a
// reservation they did not make, or a review they did not author.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation collides with existing state,
// such as registering a store whose name and address are already taken,
// booking a duplicate active reservation under the same party name, or
// writing a second review for the same reservation.
var ErrConflict = errors.New("conflict")

// ErrStoreNotFound is returned when no store exists for the given id.
var ErrStoreNotFound = errors.New("store not found")

// ErrReservationNotFound is returned when no reservation matches the lookup.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrReviewNotFound is returned when no review exists for the given id.
var ErrReviewNotFound = errors.New("review not found")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062),
// i.e. a unique key rejected the write.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
