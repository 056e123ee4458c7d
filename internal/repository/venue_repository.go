package repository // repository defines data access for venue documents

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"time"
)

// VenueSummary is a stored venue without its document.
type VenueSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SeatCount int       `json:"seat_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VenueRepo stores raw venue documents.  Documents are validated by the
// caller before they are written; the repository does not parse them.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Upsert inserts or replaces the document of a venue.
func (r *VenueRepo) Upsert(ctx context.Context, id, name string, seatCount int, doc []byte) error {
	const q = `INSERT INTO venues (id, name, seat_count, document)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE name = VALUES(name), seat_count = VALUES(seat_count),
	                                   document = VALUES(document), updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, q, id, name, seatCount, doc)
	return err
}

// GetDocument returns the stored document of a venue.
func (r *VenueRepo) GetDocument(ctx context.Context, id string) ([]byte, error) {
	const q = `SELECT document FROM venues WHERE id = ?`
	var doc []byte
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns all stored venues ordered by id.
func (r *VenueRepo) List(ctx context.Context) ([]VenueSummary, error) {
	const q = `SELECT id, name, seat_count, updated_at FROM venues ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VenueSummary{}
	for rows.Next() {
		var v VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.SeatCount, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a venue.  ErrVenueNotFound is returned when nothing matched.
func (r *VenueRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM venues WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}
