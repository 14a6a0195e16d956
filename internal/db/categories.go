package db

import (
	"context"
	"fmt"

	"magazine/catalog/internal/attr"
)

// GetOrCreateCategory returns the category with exactly this name, creating
// it if needed.
func (d *DB) GetOrCreateCategory(ctx context.Context, name string) (attr.Category, error) {
	res, err := d.conn.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return attr.Category{}, fmt.Errorf("inserting category: %w", err)
	}

	c := attr.Category{Name: name}
	if err := d.conn.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ?`, name,
	).Scan(&c.ID); err != nil {
		return attr.Category{}, fmt.Errorf("reading category: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		d.log.Debug("created category", "id", c.ID, "name", name)
	}
	return c, nil
}

// SeedCategories gets or creates each name and reports how many were new.
func (d *DB) SeedCategories(ctx context.Context, names []string) (int, error) {
	before, err := d.countCategories(ctx)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		if _, err := d.GetOrCreateCategory(ctx, name); err != nil {
			return 0, err
		}
	}
	after, err := d.countCategories(ctx)
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

func (d *DB) countCategories(ctx context.Context) (int, error) {
	var n int
	if err := d.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return n, nil
}

// AllCategories returns every category ordered by name.
func (d *DB) AllCategories(ctx context.Context) ([]attr.Category, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []attr.Category
	for rows.Next() {
		var c attr.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
