package db

import (
	"context"
	"database/sql"
	"fmt"

	"magazine/catalog/internal/attr"
)

// GetOrCreateValue returns v with the id of the stored value sharing its
// variant, name and key, inserting it first if needed. A stored value is
// never updated.
func (d *DB) GetOrCreateValue(ctx context.Context, v attr.TypedValue) (attr.TypedValue, error) {
	var (
		intVal   sql.NullInt64
		floatVal sql.NullFloat64
		boolVal  sql.NullBool
		unitID   sql.NullInt64
		tokenID  sql.NullInt64
	)
	switch v.Variant {
	case attr.VariantInt:
		intVal = nullInt(v.Int, true)
	case attr.VariantFloat:
		floatVal = sql.NullFloat64{Float64: v.Float, Valid: true}
	case attr.VariantBool:
		boolVal = sql.NullBool{Bool: v.Bool, Valid: true}
	case attr.VariantString:
		if v.Token == nil || v.Token.ID == 0 {
			return attr.TypedValue{}, fmt.Errorf("string value %q has no stored token", v.Name)
		}
		tokenID = nullInt(v.Token.ID, true)
	default:
		return attr.TypedValue{}, fmt.Errorf("unknown value variant %q", v.Variant)
	}
	if v.Unit != nil && (v.Variant == attr.VariantInt || v.Variant == attr.VariantFloat) {
		unitID = nullInt(v.Unit.ID, true)
	}

	key := v.Key()
	res, err := d.conn.ExecContext(ctx, `
		INSERT INTO typed_values (variant, name, int_value, float_value, bool_value, unit_id, token_id, value_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (variant, name, value_key) DO NOTHING
	`, string(v.Variant), v.Name, intVal, floatVal, boolVal, unitID, tokenID, key)
	if err != nil {
		return attr.TypedValue{}, fmt.Errorf("inserting typed value: %w", err)
	}

	if err := d.conn.QueryRowContext(ctx,
		`SELECT id FROM typed_values WHERE variant = ? AND name = ? AND value_key = ?`,
		string(v.Variant), v.Name, key,
	).Scan(&v.ID); err != nil {
		return attr.TypedValue{}, fmt.Errorf("reading typed value: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		d.log.Debug("created typed value", "id", v.ID, "variant", string(v.Variant), "name", v.Name, "key", key)
	}
	return v, nil
}

// CountValues returns the number of stored typed values.
func (d *DB) CountValues(ctx context.Context) (int, error) {
	var n int
	err := d.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM typed_values`).Scan(&n)
	return n, err
}
