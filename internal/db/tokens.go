package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"magazine/catalog/internal/attr"
)

// TokenContaining returns the lowest-id token whose text contains text,
// ignoring case, or nil.
func (d *DB) TokenContaining(ctx context.Context, text string) (*attr.StringToken, error) {
	var t attr.StringToken
	err := d.conn.QueryRowContext(ctx, `
		SELECT id, text FROM string_tokens
		WHERE instr(text_fold, ?) > 0
		ORDER BY id LIMIT 1
	`, fold(text)).Scan(&t.ID, &t.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up token: %w", err)
	}
	return &t, nil
}

// CreateToken stores text as a token. If a token equal to text up to case
// already exists, including one created concurrently, that token is returned.
func (d *DB) CreateToken(ctx context.Context, text string) (attr.StringToken, error) {
	f := fold(text)
	res, err := d.conn.ExecContext(ctx, `
		INSERT INTO string_tokens (text, text_fold) VALUES (?, ?)
		ON CONFLICT (text_fold) DO NOTHING
	`, text, f)
	if err != nil {
		return attr.StringToken{}, fmt.Errorf("creating token: %w", err)
	}

	var t attr.StringToken
	if err := d.conn.QueryRowContext(ctx,
		`SELECT id, text FROM string_tokens WHERE text_fold = ?`, f,
	).Scan(&t.ID, &t.Text); err != nil {
		return attr.StringToken{}, fmt.Errorf("reading token: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		d.log.Debug("created token", "id", t.ID, "text", t.Text)
	}
	return t, nil
}
