package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"magazine/catalog/internal/attr"
	"magazine/catalog/internal/owner"
)

// CreateAttribute inserts an attribute row. Its value, and its category when
// present, must already be stored.
func (d *DB) CreateAttribute(ctx context.Context, a attr.Attribute) (attr.Attribute, error) {
	if a.Value.ID == 0 {
		return attr.Attribute{}, fmt.Errorf("attribute value %q is not stored", a.Value.Name)
	}
	var catID sql.NullInt64
	if a.Category != nil {
		catID = nullInt(a.Category.ID, true)
	}

	res, err := d.conn.ExecContext(ctx, `
		INSERT INTO attributes (category_id, value_id, owner_kind, owner_id)
		VALUES (?, ?, ?, ?)
	`, catID, a.Value.ID, string(a.Owner.Kind), a.Owner.ID)
	if err != nil {
		return attr.Attribute{}, fmt.Errorf("inserting attribute: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return attr.Attribute{}, fmt.Errorf("reading attribute id: %w", err)
	}
	return a, nil
}

// scanAttribute scans a row of the attribute query in AttributesByOwner.
func scanAttribute(scanner interface{ Scan(dest ...any) error }) (attr.Attribute, error) {
	var (
		a                        attr.Attribute
		kind, variant            string
		catID                    sql.NullInt64
		catName                  sql.NullString
		intVal                   sql.NullInt64
		floatVal                 sql.NullFloat64
		boolVal                  sql.NullBool
		unitID                   sql.NullInt64
		unitName, plural, symbol sql.NullString
		tokenID                  sql.NullInt64
		tokenText                sql.NullString
	)
	err := scanner.Scan(
		&a.ID, &kind, &a.Owner.ID,
		&catID, &catName,
		&a.Value.ID, &variant, &a.Value.Name, &intVal, &floatVal, &boolVal,
		&unitID, &unitName, &plural, &symbol,
		&tokenID, &tokenText,
	)
	if err != nil {
		return attr.Attribute{}, err
	}

	a.Owner.Kind = owner.Kind(kind)
	if catID.Valid {
		a.Category = &attr.Category{ID: catID.Int64, Name: catName.String}
	}
	a.Value.Variant = attr.Variant(variant)
	a.Value.Int = intVal.Int64
	a.Value.Float = floatVal.Float64
	a.Value.Bool = boolVal.Bool
	if unitID.Valid {
		a.Value.Unit = &attr.Unit{ID: unitID.Int64, Name: unitName.String, Plural: plural.String, Symbol: symbol.String}
	}
	if tokenID.Valid {
		a.Value.Token = &attr.StringToken{ID: tokenID.Int64, Text: tokenText.String}
	}
	return a, nil
}

// AttributesByOwner returns the attributes of ref in creation order. A
// non-empty nameFilter keeps only values whose name contains it, ignoring
// case.
func (d *DB) AttributesByOwner(ctx context.Context, ref owner.Ref, nameFilter string) ([]attr.Attribute, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT a.id, a.owner_kind, a.owner_id,
		       c.id, c.name,
		       v.id, v.variant, v.name, v.int_value, v.float_value, v.bool_value,
		       u.id, u.name, u.name_plural, u.symbol,
		       t.id, t.text
		FROM attributes a
		JOIN typed_values v ON v.id = a.value_id
		LEFT JOIN categories c ON c.id = a.category_id
		LEFT JOIN units u ON u.id = v.unit_id
		LEFT JOIN string_tokens t ON t.id = v.token_id
		WHERE a.owner_kind = ? AND a.owner_id = ?
		ORDER BY a.id
	`, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("querying attributes of %s: %w", ref, err)
	}
	defer rows.Close()

	filter := fold(nameFilter)
	var attrs []attr.Attribute
	for rows.Next() {
		a, err := scanAttribute(rows)
		if err != nil {
			return nil, err
		}
		if filter != "" && !strings.Contains(fold(a.Value.Name), filter) {
			continue
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}
