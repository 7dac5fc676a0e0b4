// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// ReservationVisitedEvent is published after a successful check-in.  It
// carries enough information for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type ReservationVisitedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	CustomerID    uint64 `json:"customer_id"`
	StoreID       uint64 `json:"store_id"`
	StoreName     string `json:"store_name"`
	PartyName     string `json:"party_name"`
	PartySize     int    `json:"party_size"`
	ScheduledTime string `json:"scheduled_time"`
	VisitedAt     string `json:"visited_at"`
}
