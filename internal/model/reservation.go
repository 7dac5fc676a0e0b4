package model

import "time"

// CheckInLeadTime is how early a guest may confirm arrival before the
// scheduled reservation time.  The check-in window is the half-open interval
// [ScheduledTime-CheckInLeadTime, ScheduledTime): arriving exactly ten
// minutes early counts, arriving at (or after) the scheduled minute does not.
const CheckInLeadTime = 10 * time.Minute

// Reservation is a booking made by a customer at a store.  The party name is
// a free-text label for the booking and need not match the customer's
// account name.  Reservations are never hard-deleted; cancellation is a
// status, not a removal.
//
// Fields:
//
//	ID            – primary key identifier.
//	CustomerID    – user who made the booking.
//	StoreID       – store the booking targets.
//	PartyName     – label under which the party checks in.
//	PartySize     – number of guests, at least 1.
//	ScheduledTime – agreed arrival time, strictly in the future at creation.
//	Status        – lifecycle state, see ReservationStatus.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Reservation struct {
	ID            uint64            `json:"id"`
	CustomerID    uint64            `json:"customer_id"`
	StoreID       uint64            `json:"store_id"`
	PartyName     string            `json:"party_name"`
	PartySize     int               `json:"party_size"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CheckInWindow returns the interval during which arrival may be confirmed.
// The start is inclusive, the end (the scheduled time itself) exclusive.
func (r *Reservation) CheckInWindow() (start, end time.Time) {
	return r.ScheduledTime.Add(-CheckInLeadTime), r.ScheduledTime
}

// CanCheckIn reports whether the reservation may transition to VISITED at
// the given instant: the status must be APPROVED and now must fall inside
// the check-in window.
func (r *Reservation) CanCheckIn(now time.Time) bool {
	if r.Status != StatusApproved {
		return false
	}
	start, end := r.CheckInWindow()
	return !now.Before(start) && now.Before(end)
}
