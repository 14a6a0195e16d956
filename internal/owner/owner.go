// Package owner implements weak, generic references to entities that live
// outside the catalog core: a kind tag plus a positive integer id.
package owner

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Kind identifies the type of an owning entity.
type Kind string

const (
	Product   Kind = "product"
	Outlet    Kind = "outlet"
	Warehouse Kind = "warehouse"
	Address   Kind = "address"
	User      Kind = "user"
	Comment   Kind = "comment"
)

// Kinds lists every known entity kind in a stable order.
var Kinds = []Kind{Product, Outlet, Warehouse, Address, User, Comment}

func (k Kind) String() string { return string(k) }

// Known reports whether k is one of Kinds.
func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Ref is a weak reference to an entity. It never points at the entity itself.
type Ref struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// HasIdentity reports whether r names a persisted entity of a known kind.
func (r Ref) HasIdentity() bool {
	return r.Kind.Known() && r.ID > 0
}

// ParseRef parses the "kind:id" form produced by Ref.String.
func ParseRef(s string) (Ref, error) {
	kind, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Ref{}, fmt.Errorf("owner reference %q: expected kind:id", s)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("owner reference %q: bad id: %w", s, err)
	}
	return Ref{Kind: Kind(strings.ToLower(kind)), ID: n}, nil
}

// InvalidOwnerError is returned when an operation is handed something that
// is not a reference to a persisted entity.
type InvalidOwnerError struct {
	Ref    Ref
	Reason string
}

func (e *InvalidOwnerError) Error() string {
	return fmt.Sprintf("invalid owner %s: %s", e.Ref, e.Reason)
}

// Resolver reports whether the entity with the given id exists.
type Resolver func(ctx context.Context, id int64) (bool, error)

// Registry holds one Resolver per entity kind. Kinds without a resolver are
// accepted on identity alone.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[Kind]Resolver
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[Kind]Resolver)}
}

// Register installs the resolver for kind, replacing any previous one.
func (r *Registry) Register(kind Kind, fn Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[kind] = fn
}

// Validate returns an *InvalidOwnerError if ref lacks an identity or its
// resolver cannot find it. Resolver failures are returned wrapped.
func (r *Registry) Validate(ctx context.Context, ref Ref) error {
	if !ref.Kind.Known() {
		return &InvalidOwnerError{Ref: ref, Reason: "unknown entity kind"}
	}
	if ref.ID <= 0 {
		return &InvalidOwnerError{Ref: ref, Reason: "entity has no identity"}
	}
	if r == nil {
		return nil
	}

	r.mu.RLock()
	fn, ok := r.resolvers[ref.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	found, err := fn(ctx, ref.ID)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", ref, err)
	}
	if !found {
		return &InvalidOwnerError{Ref: ref, Reason: "entity does not exist"}
	}
	return nil
}
