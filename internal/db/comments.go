package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"magazine/catalog/internal/comment"
	"magazine/catalog/internal/owner"
)

const commentColumns = `
	c.id, c.user_id, c.text, c.path, c.owner_kind, c.owner_id, c.created_at,
	(SELECT AVG(r.value) FROM ratings r WHERE r.owner_kind = 'comment' AND r.owner_id = c.id)`

// scanComment scans a row selected with commentColumns.
func scanComment(scanner interface{ Scan(dest ...any) error }) (comment.Node, error) {
	var (
		n       comment.Node
		path    string
		kind    string
		created int64
		avg     sql.NullFloat64
	)
	if err := scanner.Scan(&n.ID, &n.UserID, &n.Text, &path, &kind, &n.Owner.ID, &created, &avg); err != nil {
		return comment.Node{}, err
	}
	p, err := comment.ParsePath(path)
	if err != nil {
		return comment.Node{}, fmt.Errorf("comment %d: %w", n.ID, err)
	}
	n.Path = p
	n.Owner.Kind = owner.Kind(kind)
	n.CreatedAt = time.UnixMilli(created)
	if avg.Valid {
		v := avg.Float64
		n.Rating = &v
	}
	return n, nil
}

// AddRoot stores a new top-level comment on ref.
func (d *DB) AddRoot(ctx context.Context, ref owner.Ref, userID int64, text string) (comment.Node, error) {
	return d.insertComment(ctx, nil, ref, userID, text)
}

// AddChild stores a reply to the comment parentID. The reply belongs to the
// same owner as its parent.
func (d *DB) AddChild(ctx context.Context, parentID, userID int64, text string) (comment.Node, error) {
	parent, err := d.CommentByID(ctx, parentID)
	if err != nil {
		return comment.Node{}, err
	}
	return d.insertComment(ctx, parent.Path, parent.Owner, userID, text)
}

// insertComment allocates the next free path under parent and inserts the
// comment there. Both steps run in one write transaction, so concurrent
// writers queue on the database lock instead of reading the same last
// sibling. A unique violation still triggers a bounded retry.
func (d *DB) insertComment(ctx context.Context, parent comment.Path, ref owner.Ref, userID int64, text string) (comment.Node, error) {
	for attempt := 0; ; attempt++ {
		n, err := d.insertCommentTx(ctx, parent, ref, userID, text)
		if err != nil {
			if isUniqueViolation(err) && attempt < d.commentRetry {
				d.log.Warn("comment path taken, retrying", "parent", parent.String(), "attempt", attempt+1)
				continue
			}
			return comment.Node{}, err
		}
		d.log.Debug("created comment", "id", n.ID, "path", n.Path.String(), "owner", ref.String())
		return n, nil
	}
}

// insertCommentTx runs one allocate-and-insert under BEGIN IMMEDIATE on a
// dedicated connection.
func (d *DB) insertCommentTx(ctx context.Context, parent comment.Path, ref owner.Ref, userID int64, text string) (_ comment.Node, err error) {
	conn, err := d.conn.Conn(ctx)
	if err != nil {
		return comment.Node{}, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `BEGIN IMMEDIATE`); err != nil {
		return comment.Node{}, fmt.Errorf("starting comment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if _, rbErr := conn.ExecContext(context.Background(), `ROLLBACK`); rbErr != nil {
				d.log.Warn("rolling back comment insert", "error", rbErr)
			}
		}
	}()

	path, err := nextChildPath(ctx, conn, parent)
	if err != nil {
		return comment.Node{}, err
	}

	created := nowMillis()
	res, err := conn.ExecContext(ctx, `
		INSERT INTO comments (user_id, text, path, depth, owner_kind, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, userID, text, path.String(), path.Depth(), string(ref.Kind), ref.ID, created)
	if err != nil {
		return comment.Node{}, fmt.Errorf("inserting comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return comment.Node{}, fmt.Errorf("reading comment id: %w", err)
	}
	if _, err = conn.ExecContext(ctx, `COMMIT`); err != nil {
		return comment.Node{}, fmt.Errorf("committing comment: %w", err)
	}

	return comment.Node{
		ID:        id,
		UserID:    userID,
		Text:      text,
		Path:      path,
		Owner:     ref,
		CreatedAt: time.UnixMilli(created),
	}, nil
}

// querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nextChildPath returns the path after the last existing child of parent.
func nextChildPath(ctx context.Context, q querier, parent comment.Path) (comment.Path, error) {
	prefix := parent.String()
	var last sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT MAX(path) FROM comments
		WHERE depth = ? AND substr(path, 1, ?) = ?
	`, parent.Depth()+1, len(prefix), prefix).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("finding last sibling: %w", err)
	}
	if !last.Valid {
		return parent.Child(comment.FirstSegment), nil
	}

	lastPath, err := comment.ParsePath(last.String)
	if err != nil {
		return nil, err
	}
	next, err := lastPath.Last().Next()
	if err != nil {
		return nil, fmt.Errorf("allocating child of %q: %w", prefix, err)
	}
	return parent.Child(next), nil
}

// CommentByID returns one comment with its average rating.
func (d *DB) CommentByID(ctx context.Context, id int64) (comment.Node, error) {
	row := d.conn.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments c WHERE c.id = ?`, id)
	n, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return comment.Node{}, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return comment.Node{}, fmt.Errorf("loading comment %d: %w", id, err)
	}
	return n, nil
}

// NodesByPathPrefix returns the comment at p and all of its descendants, in
// path order, each with its average rating.
func (d *DB) NodesByPathPrefix(ctx context.Context, p comment.Path) ([]comment.Node, error) {
	prefix := p.String()
	rows, err := d.conn.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE substr(c.path, 1, ?) = ?
		ORDER BY c.path
	`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("querying subtree %q: %w", prefix, err)
	}
	defer rows.Close()

	var nodes []comment.Node
	for rows.Next() {
		n, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// CommentsByOwner returns the top-level comments on ref in creation order.
func (d *DB) CommentsByOwner(ctx context.Context, ref owner.Ref) ([]comment.Node, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		WHERE c.owner_kind = ? AND c.owner_id = ? AND c.depth = 1
		ORDER BY c.path
	`, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("querying comments of %s: %w", ref, err)
	}
	defer rows.Close()

	var nodes []comment.Node
	for rows.Next() {
		n, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// CommentExists reports whether a comment with id is stored. It serves as
// the owner resolver for the comment kind.
func (d *DB) CommentExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := d.conn.QueryRowContext(ctx, `SELECT 1 FROM comments WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
