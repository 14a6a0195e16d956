package comment

import (
	"context"
	"fmt"
	"log/slog"

	"magazine/catalog/internal/owner"
	"magazine/catalog/internal/rating"
)

// NodeSource loads comments from storage.
type NodeSource interface {
	CommentByID(ctx context.Context, id int64) (Node, error)
	// NodesByPathPrefix returns every comment whose path starts with p,
	// including the one at p, in path order.
	NodesByPathPrefix(ctx context.Context, p Path) ([]Node, error)
}

// RatingSource loads the raw ratings of an entity.
type RatingSource interface {
	RatingsByOwner(ctx context.Context, ref owner.Ref) ([]rating.Rating, error)
}

// Thread serves rating-ordered comment subtrees.
type Thread struct {
	nodes   NodeSource
	ratings RatingSource
	log     *slog.Logger
}

// NewThread returns a Thread reading from nodes. When ratings is non-nil,
// each node's average rating is recomputed from it; otherwise the Rating
// already carried by the loaded nodes is used as is.
func NewThread(nodes NodeSource, ratings RatingSource, logger *slog.Logger) *Thread {
	if logger == nil {
		logger = slog.Default()
	}
	return &Thread{nodes: nodes, ratings: ratings, log: logger}
}

// Subtree returns the comment with the given id and all of its descendants,
// each level ordered by average rating.
func (t *Thread) Subtree(ctx context.Context, id int64) (*Tree, error) {
	root, err := t.nodes.CommentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading comment %d: %w", id, err)
	}
	nodes, err := t.nodes.NodesByPathPrefix(ctx, root.Path)
	if err != nil {
		return nil, fmt.Errorf("loading subtree of comment %d: %w", id, err)
	}

	if t.ratings != nil {
		// the copy of root inside nodes carries the fresh aggregate
		root.Rating = nil
		for i := range nodes {
			rs, err := t.ratings.RatingsByOwner(ctx, owner.Ref{Kind: owner.Comment, ID: nodes[i].ID})
			if err != nil {
				return nil, fmt.Errorf("loading ratings of comment %d: %w", nodes[i].ID, err)
			}
			nodes[i].Rating = rating.Aggregate(rs)
		}
	}

	tree, err := ExpandSubtree(root, nodes)
	if err != nil {
		return nil, err
	}
	t.log.Debug("expanded comment subtree", "id", id, "nodes", tree.Size())
	return tree, nil
}
