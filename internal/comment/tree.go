// Package comment builds rating-ordered trees of hierarchical comments
// stored with materialized paths.
package comment

import (
	"fmt"
	"sort"
	"time"

	"magazine/catalog/internal/owner"
)

// Node is one comment. Rating is the mean of its ratings, nil if unrated.
type Node struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	Path      Path      `json:"path"`
	Owner     owner.Ref `json:"owner"`
	Rating    *float64  `json:"average_rating"`
	CreatedAt time.Time `json:"created_at"`
}

// score orders siblings; unrated comments count as zero.
func (n *Node) score() float64 {
	if n.Rating == nil {
		return 0
	}
	return *n.Rating
}

// Tree is a node with its ordered children.
type Tree struct {
	Node
	Children []*Tree `json:"children"`
}

// Size counts the nodes in t, including t itself.
func (t *Tree) Size() int {
	n := 1
	for _, c := range t.Children {
		n += c.Size()
	}
	return n
}

// MalformedPathError reports a node whose path does not extend an ancestor
// reachable from the subtree root.
type MalformedPathError struct {
	NodeID int64
	Path   Path
	Root   Path
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("comment %d: path %q is not reachable from %q", e.NodeID, e.Path.String(), e.Root.String())
}

// ExpandSubtree arranges nodes, the flat subtree of root, into a tree rooted
// at root. Siblings are ordered by rating, highest first, keeping input
// order among equal ratings. If nodes contains root itself (same id), that
// copy supplies root's rating.
func ExpandSubtree(root Node, nodes []Node) (*Tree, error) {
	present := make(map[string]bool, len(nodes)+1)
	present[root.Path.String()] = true
	for i := range nodes {
		if nodes[i].ID == root.ID {
			if nodes[i].Rating != nil {
				root.Rating = nodes[i].Rating
			}
			continue
		}
		present[nodes[i].Path.String()] = true
	}

	byParent := make(map[string][]*Node, len(nodes))
	// detached holds nodes whose parent is not in the set; a well-formed
	// subtree leaves it empty.
	var detached []*Node
	for i := range nodes {
		n := &nodes[i]
		if n.ID == root.ID {
			continue
		}
		parent := n.Path.Parent().String()
		if !n.Path.IsDescendantOf(root.Path) || !present[parent] {
			detached = append(detached, n)
			continue
		}
		byParent[parent] = append(byParent[parent], n)
	}
	if len(detached) > 0 {
		n := detached[0]
		return nil, &MalformedPathError{NodeID: n.ID, Path: n.Path, Root: root.Path}
	}

	return assemble(root, byParent), nil
}

func assemble(n Node, byParent map[string][]*Node) *Tree {
	kids := byParent[n.Path.String()]
	sort.SliceStable(kids, func(i, j int) bool {
		return kids[i].score() > kids[j].score()
	})

	t := &Tree{Node: n, Children: make([]*Tree, 0, len(kids))}
	for _, k := range kids {
		t.Children = append(t.Children, assemble(*k, byParent))
	}
	return t
}
