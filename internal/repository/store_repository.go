package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"tablebook/internal/model"
)

// StoreRepo encapsulates all database queries related to stores.  A store
// belongs to a single partner user and carries a denormalized average rating
// column that the review handlers keep in sync with the reviews table.
type StoreRepo struct {
	db *sql.DB
}

// NewStoreRepo constructs a StoreRepo with the provided DB handle.
func NewStoreRepo(db *sql.DB) *StoreRepo { return &StoreRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions that span
// multiple repositories.
func (r *StoreRepo) DB() *sql.DB { return r.db }

// ExistsByNameAndAddress reports whether a store with the exact name and
// address pair is already registered.  The (name, address) unique key on the
// table is the authoritative guard; this check only lets callers fail fast.
func (r *StoreRepo) ExistsByNameAndAddress(ctx context.Context, name, address string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM stores WHERE name = ? AND address = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name, address).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new store.  On success the ID, timestamps and the default
// average rating are populated on the provided record.  A duplicate
// name+address pair surfaces as ErrConflict (unique key 1062).
func (r *StoreRepo) Create(ctx context.Context, s *model.Store) error {
	const qInsert = `INSERT INTO stores (owner_id, name, address, description) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, s.OwnerID, s.Name, s.Address, s.Description)
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
	s.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const qSelect = `SELECT average_rating, created_at, updated_at FROM stores WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.AverageRating, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID fetches a store by its id.  It returns ErrStoreNotFound when no
// row exists.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	const q = `SELECT id, owner_id, name, address, description, average_rating, created_at, updated_at
	           FROM stores WHERE id = ?`
	var s model.Store
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Description,
		&s.AverageRating, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Update overwrites the mutable store columns (name, address, description).
// Ownership is validated by the caller before this is invoked.  A rename
// that collides with another store's name+address pair surfaces as
// ErrConflict.
func (r *StoreRepo) Update(ctx context.Context, s *model.Store) error {
	const q = `UPDATE stores
	           SET name = ?, address = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Address, s.Description, s.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Row may exist with identical values; confirm existence before
		// reporting not found.
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM stores WHERE id = ?)`, s.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrStoreNotFound
		}
	}
	return nil
}

// Delete removes a store row.  Dependent reservations and reviews are
// removed by ON DELETE CASCADE foreign keys.  Returns ErrStoreNotFound when
// no row was deleted.
func (r *StoreRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoreNotFound
	}
	return nil
}

// StoreSearchQuery defines the filter and pagination for browsing stores.
type StoreSearchQuery struct {
	Name     string
	Page     int
	PageSize int
}

// Search returns stores whose name contains the query text (case-insensitive),
// together with the total match count for pagination.  An empty name lists
// every store.  Results are ordered by id for stable paging.
func (r *StoreRepo) Search(ctx context.Context, q StoreSearchQuery) ([]model.Store, int64, error) {
	cond := "1=1"
	args := []any{}
	if q.Name != "" {
		cond = "LOWER(name) LIKE ?"
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	dataSQL := `SELECT id, owner_id, name, address, description, average_rating, created_at, updated_at
	            FROM stores WHERE ` + cond + ` ORDER BY id LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Store, 0, limit)
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Description,
			&s.AverageRating, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// AllNames returns the name of every registered store.  It is used once at
// startup to rebuild the autocomplete index from the catalog.
func (r *StoreRepo) AllNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM stores ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// UpdateAverageRatingTx persists a freshly recomputed average rating within
// the transaction that modified the reviews it was computed from, so the
// cached average is never observably inconsistent with the review set.
func (r *StoreRepo) UpdateAverageRatingTx(ctx context.Context, tx *sql.Tx, storeID uint64, avg float64) error {
	const q = `UPDATE stores SET average_rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, avg, storeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM stores WHERE id = ?)`, storeID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrStoreNotFound
		}
	}
	return nil
}
