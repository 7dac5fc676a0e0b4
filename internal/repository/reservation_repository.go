package repository

import (
	"context"
	"database/sql"
	"errors"

	"tablebook/internal/model"
)

// ReservationRepo provides persistence for reservations.  All status
// mutations flow through UpdateStatus so the lifecycle is driven entirely by
// the handlers; rows are never hard-deleted (cancellation is a status).
// Timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, customer_id, store_id, party_name, party_size, scheduled_time, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }, res *model.Reservation) error {
	return row.Scan(
		&res.ID, &res.CustomerID, &res.StoreID, &res.PartyName, &res.PartySize,
		&res.ScheduledTime, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
}

// Create inserts a new reservation in PENDING state and populates the
// generated id and timestamps on the provided record.  A collision with the
// active-duplicate unique key surfaces as ErrConflict; the application-level
// ExistsActiveDuplicate check is only a fail-fast optimization, this key is
// the authoritative guard against concurrent identical requests.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	res.Status = model.StatusPending
	const q = `INSERT INTO reservations (customer_id, store_id, party_name, party_size, scheduled_time, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.CustomerID, res.StoreID, res.PartyName, res.PartySize, res.ScheduledTime, res.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// ExistsActiveDuplicate reports whether the store already has a reservation
// under the same party name that is still pending or approved.  Terminal
// reservations never block a new booking.
func (r *ReservationRepo) ExistsActiveDuplicate(ctx context.Context, storeID uint64, partyName string) (bool, error) {
	const q = `SELECT EXISTS(
	               SELECT 1 FROM reservations
	               WHERE store_id = ? AND party_name = ? AND status IN (?, ?)
	           )`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, storeID, partyName, model.StatusPending, model.StatusApproved).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID fetches a reservation by id, returning ErrReservationNotFound when
// no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// GetByIDAndStore fetches a reservation only if it was made at the given
// store.  Check-in kiosks identify reservations this way so a reservation id
// from another store reads as not found rather than leaking its existence.
func (r *ReservationRepo) GetByIDAndStore(ctx context.Context, id, storeID uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? AND store_id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id, storeID), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// GetByIDForPartner fetches a reservation on behalf of a partner user.  It
// verifies through the stores table that the caller owns the store the
// reservation targets: ErrReservationNotFound when the reservation does not
// exist, ErrForbidden when it belongs to someone else's store.
func (r *ReservationRepo) GetByIDForPartner(ctx context.Context, id, partnerID uint64) (*model.Reservation, error) {
	const checkQ = `SELECT s.owner_id
	                FROM reservations r
	                JOIN stores s ON s.id = r.store_id
	                WHERE r.id = ?`
	var actualOwnerID uint64
	if err := r.db.QueryRowContext(ctx, checkQ, id).Scan(&actualOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if actualOwnerID != partnerID {
		return nil, ErrForbidden
	}
	return r.GetByID(ctx, id)
}

// ListByCustomer returns every reservation made by the customer, most
// recently created first.  When none exist an empty slice is returned.
func (r *ReservationRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE customer_id = ? ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, customerID)
}

// ListByStore returns every reservation at the store, oldest created first,
// the order a partner works through the day's bookings.
func (r *ReservationRepo) ListByStore(ctx context.Context, storeID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE store_id = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, q, storeID)
}

func (r *ReservationRepo) list(ctx context.Context, query string, arg any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus overwrites the reservation's status.  Callers are responsible
// for any transition rules; the repository applies the write unconditionally.
// Returns ErrReservationNotFound when the row does not exist.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
	const q = `UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrReservationNotFound
		}
	}
	return nil
}
