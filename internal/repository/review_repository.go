package repository

import (
	"context"
	"database/sql"
	"errors"

	"tablebook/internal/model"
)

// ReviewRepo provides persistence for reviews.  The reviews table stores the
// rating as its 0–10 integer unit (see model.Rating); every write method that
// touches a review carries a *Tx variant because review mutations must share
// a transaction with the store average-rating recompute — the cached average
// must never be observably inconsistent with the review set that produced it.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// DB exposes the underlying pool so handlers can open the transaction that
// spans the review write and the average recompute.
func (r *ReviewRepo) DB() *sql.DB { return r.db }

const reviewColumns = `id, author_id, store_id, reservation_id, content, rating, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }, rv *model.Review) error {
	var unit int
	if err := row.Scan(
		&rv.ID, &rv.AuthorID, &rv.StoreID, &rv.ReservationID,
		&rv.Content, &unit, &rv.CreatedAt, &rv.UpdatedAt,
	); err != nil {
		return err
	}
	rating, err := model.RatingFromUnit(unit)
	if err != nil {
		return err
	}
	rv.Rating = rating
	return nil
}

// ExistsByReservation reports whether a review has already been written for
// the reservation.  At most one review may exist per reservation; the unique
// key on reservation_id is the authoritative guard.
func (r *ReviewRepo) ExistsByReservation(ctx context.Context, reservationID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM reviews WHERE reservation_id = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, reservationID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID fetches a review by id, returning ErrReviewNotFound when no row
// exists.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	var rv model.Review
	if err := scanReview(r.db.QueryRowContext(ctx, q, id), &rv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// CreateTx inserts a new review within the scope of an existing transaction
// and populates the generated id and timestamps on the record.  A second
// review for the same reservation trips the unique key and surfaces as
// ErrConflict.
func (r *ReviewRepo) CreateTx(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	const q = `INSERT INTO reviews (author_id, store_id, reservation_id, content, rating)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, rv.AuthorID, rv.StoreID, rv.ReservationID, rv.Content, rv.Rating.Unit())
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM reviews WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, rv.ID).Scan(&rv.CreatedAt, &rv.UpdatedAt)
}

// UpdateTx overwrites the content and rating of a review within a
// transaction.  Authorship is validated by the caller.
func (r *ReviewRepo) UpdateTx(ctx context.Context, tx *sql.Tx, id uint64, content string, rating model.Rating) error {
	const q = `UPDATE reviews SET content = ?, rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, content, rating.Unit(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reviews WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrReviewNotFound
		}
	}
	return nil
}

// DeleteTx removes a review within a transaction, returning
// ErrReviewNotFound when no row was deleted.
func (r *ReviewRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// AverageScoreByStoreTx recomputes the store's average rating on the 0.0–5.0
// display scale from every review currently bound to it, yielding 0 when
// none exist.  The stored 0–10 unit is halved inside this single query — the
// only place a unit-to-score conversion happens outside model.Rating — so
// the scale is applied exactly once, end to end.
func (r *ReviewRepo) AverageScoreByStoreTx(ctx context.Context, tx *sql.Tx, storeID uint64) (float64, error) {
	const q = `SELECT COALESCE(AVG(rating / 2.0), 0) FROM reviews WHERE store_id = ?`
	var avg float64
	if err := tx.QueryRowContext(ctx, q, storeID).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// ListByStore returns a page of the store's reviews, newest created first,
// along with the total count for pagination.
func (r *ReviewRepo) ListByStore(ctx context.Context, storeID uint64, page, pageSize int) ([]model.Review, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE store_id = ?`, storeID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT ` + reviewColumns + ` FROM reviews
	           WHERE store_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, storeID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Review, 0, pageSize)
	for rows.Next() {
		var rv model.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
