package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a row would violate a uniqueness rule.
var ErrConflict = errors.New("already exists")

// DefaultCommentRetry is how often a comment insert is retried after losing
// a race for its path.
const DefaultCommentRetry = 3

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string

	log          *slog.Logger
	commentRetry int
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for creations and retries.
func WithLogger(l *slog.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.log = l
		}
	}
}

// WithCommentRetry sets how many times a comment insert is retried on a
// path conflict. Values below 1 are ignored.
func WithCommentRetry(n int) Option {
	return func(d *DB) {
		if n >= 1 {
			d.commentRetry = n
		}
	}
}

// OpenDB opens (creating if needed) a SQLite database with WAL mode and
// foreign keys enabled, and makes sure the schema exists.
func OpenDB(path string, opts ...Option) (*DB, error) {
	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	d := &DB{conn: conn, Path: path, log: slog.Default(), commentRetry: DefaultCommentRetry}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.initSchema(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}

const schema = `
CREATE TABLE IF NOT EXISTS units (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	name_plural TEXT NOT NULL,
	symbol      TEXT NOT NULL,
	name_fold   TEXT NOT NULL UNIQUE,
	plural_fold TEXT NOT NULL UNIQUE,
	symbol_fold TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS string_tokens (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	text      TEXT NOT NULL,
	text_fold TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS categories (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS typed_values (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	variant     TEXT NOT NULL,
	name        TEXT NOT NULL,
	int_value   INTEGER,
	float_value REAL,
	bool_value  INTEGER,
	unit_id     INTEGER REFERENCES units(id),
	token_id    INTEGER REFERENCES string_tokens(id),
	value_key   TEXT NOT NULL,
	UNIQUE (variant, name, value_key)
);

CREATE TABLE IF NOT EXISTS attributes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	category_id INTEGER REFERENCES categories(id),
	value_id    INTEGER NOT NULL REFERENCES typed_values(id),
	owner_kind  TEXT NOT NULL,
	owner_id    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attributes_owner ON attributes(owner_kind, owner_id);

CREATE TABLE IF NOT EXISTS ratings (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL,
	value      INTEGER NOT NULL CHECK (value BETWEEN 1 AND 10),
	owner_kind TEXT NOT NULL,
	owner_id   INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ratings_owner ON ratings(owner_kind, owner_id);

CREATE TABLE IF NOT EXISTS comments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL,
	text       TEXT NOT NULL,
	path       TEXT NOT NULL UNIQUE,
	depth      INTEGER NOT NULL,
	owner_kind TEXT NOT NULL,
	owner_id   INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
`

func (d *DB) initSchema(ctx context.Context) error {
	if _, err := d.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// fold maps s to its case-folded form. SQLite's lower() and LIKE only fold
// ASCII, so every case-insensitive column is stored pre-folded.
func fold(s string) string {
	return cases.Fold().String(s)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nowMillis() int64 { return time.Now().UnixMilli() }

func nullInt(v int64, valid bool) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: valid}
}
