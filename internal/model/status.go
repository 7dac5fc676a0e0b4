package model

import (
	"errors"
	"fmt"
	"strings"
)

// ReservationStatus enumerates the lifecycle states of a reservation.
//
//	PENDING  – initial state after booking, awaiting a partner decision.
//	APPROVED – partner accepted the booking; check-in becomes possible.
//	REJECTED – partner declined the booking (terminal).
//	CANCELED – canceled by the customer or the partner (terminal).
//	VISITED  – customer checked in during the arrival window (terminal).
//	NO_SHOW  – check-in attempted outside the window/status, or the
//	           partner marked the guest absent (terminal).
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "PENDING"
	StatusApproved ReservationStatus = "APPROVED"
	StatusRejected ReservationStatus = "REJECTED"
	StatusCanceled ReservationStatus = "CANCELED"
	StatusVisited  ReservationStatus = "VISITED"
	StatusNoShow   ReservationStatus = "NO_SHOW"
)

// ErrUnknownStatus is returned by ParseReservationStatus when the input does
// not name any reservation status.
var ErrUnknownStatus = errors.New("unknown reservation status")

var statusByName = map[string]ReservationStatus{
	"PENDING":  StatusPending,
	"APPROVED": StatusApproved,
	"REJECTED": StatusRejected,
	"CANCELED": StatusCanceled,
	"VISITED":  StatusVisited,
	"NO_SHOW":  StatusNoShow,
}

// ParseReservationStatus matches a status name case-insensitively against the
// enum.  Surrounding whitespace is ignored.  Unknown names produce a wrapped
// ErrUnknownStatus carrying the offending input, never a bare failure.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	st, ok := statusByName[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}
