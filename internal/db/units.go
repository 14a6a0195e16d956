package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"magazine/catalog/internal/attr"
)

func scanUnit(scanner interface{ Scan(dest ...any) error }) (attr.Unit, error) {
	var u attr.Unit
	err := scanner.Scan(&u.ID, &u.Name, &u.Plural, &u.Symbol)
	return u, err
}

// CreateUnit stores a new unit. An incomplete unit fails with
// attr.ErrInvalidUnit. Name, plural and symbol must each be unused, ignoring
// case; otherwise the error wraps ErrConflict.
func (d *DB) CreateUnit(ctx context.Context, u attr.Unit) (attr.Unit, error) {
	if err := attr.ValidateUnit(u); err != nil {
		return attr.Unit{}, fmt.Errorf("unit %q: %w", u.Name, err)
	}
	res, err := d.conn.ExecContext(ctx, `
		INSERT INTO units (name, name_plural, symbol, name_fold, plural_fold, symbol_fold)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.Name, u.Plural, u.Symbol, fold(u.Name), fold(u.Plural), fold(u.Symbol))
	if err != nil {
		if isUniqueViolation(err) {
			return attr.Unit{}, fmt.Errorf("unit %s: %w", u, ErrConflict)
		}
		return attr.Unit{}, fmt.Errorf("creating unit: %w", err)
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return attr.Unit{}, fmt.Errorf("reading unit id: %w", err)
	}
	d.log.Debug("created unit", "id", u.ID, "unit", u.String())
	return u, nil
}

// SeedUnits inserts every unit that does not clash with an existing one and
// reports how many were added.
func (d *DB) SeedUnits(ctx context.Context, units []attr.Unit) (int, error) {
	added := 0
	for _, u := range units {
		if err := attr.ValidateUnit(u); err != nil {
			return added, fmt.Errorf("seeding unit %q: %w", u.Name, err)
		}
		res, err := d.conn.ExecContext(ctx, `
			INSERT INTO units (name, name_plural, symbol, name_fold, plural_fold, symbol_fold)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`, u.Name, u.Plural, u.Symbol, fold(u.Name), fold(u.Plural), fold(u.Symbol))
		if err != nil {
			return added, fmt.Errorf("seeding unit %s: %w", u, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}

// AllUnits returns every unit ordered by id.
func (d *DB) AllUnits(ctx context.Context) ([]attr.Unit, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT id, name, name_plural, symbol FROM units ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []attr.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// UnitByName returns the lowest-id unit whose name and plural name both
// contain text, ignoring case, or nil.
func (d *DB) UnitByName(ctx context.Context, text string) (*attr.Unit, error) {
	f := fold(text)
	row := d.conn.QueryRowContext(ctx, `
		SELECT id, name, name_plural, symbol FROM units
		WHERE instr(name_fold, ?) > 0 AND instr(plural_fold, ?) > 0
		ORDER BY id LIMIT 1
	`, f, f)
	return optionalUnit(row)
}

// UnitByNameAndSymbol is UnitByName restricted to units whose symbol equals
// symbol, ignoring case.
func (d *DB) UnitByNameAndSymbol(ctx context.Context, text, symbol string) (*attr.Unit, error) {
	f := fold(text)
	row := d.conn.QueryRowContext(ctx, `
		SELECT id, name, name_plural, symbol FROM units
		WHERE instr(name_fold, ?) > 0 AND instr(plural_fold, ?) > 0 AND symbol_fold = ?
		ORDER BY id LIMIT 1
	`, f, f, fold(symbol))
	return optionalUnit(row)
}

func optionalUnit(row *sql.Row) (*attr.Unit, error) {
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up unit: %w", err)
	}
	return &u, nil
}
