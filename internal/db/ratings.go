package db

import (
	"context"
	"fmt"
	"time"

	"magazine/catalog/internal/owner"
	"magazine/catalog/internal/rating"
)

// CreateRating records r. Ratings are never updated; rating the same entity
// again adds another row.
func (d *DB) CreateRating(ctx context.Context, r rating.Rating) (rating.Rating, error) {
	created := nowMillis()
	res, err := d.conn.ExecContext(ctx, `
		INSERT INTO ratings (user_id, value, owner_kind, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.UserID, r.Value, string(r.Owner.Kind), r.Owner.ID, created)
	if err != nil {
		return rating.Rating{}, fmt.Errorf("inserting rating: %w", err)
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return rating.Rating{}, fmt.Errorf("reading rating id: %w", err)
	}
	r.CreatedAt = time.UnixMilli(created)
	d.log.Debug("created rating", "id", r.ID, "owner", r.Owner.String(), "value", r.Value)
	return r, nil
}

// RatingsByOwner returns every rating of ref, oldest first.
func (d *DB) RatingsByOwner(ctx context.Context, ref owner.Ref) ([]rating.Rating, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, user_id, value, created_at FROM ratings
		WHERE owner_kind = ? AND owner_id = ?
		ORDER BY id
	`, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("querying ratings of %s: %w", ref, err)
	}
	defer rows.Close()

	var out []rating.Rating
	for rows.Next() {
		r := rating.Rating{Owner: ref}
		var created int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.Value, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.UnixMilli(created)
		out = append(out, r)
	}
	return out, rows.Err()
}
