package attr

import (
	"context"
	"fmt"
	"log/slog"

	"magazine/catalog/internal/owner"
)

// Attacher attaches typed attributes to owning entities.
type Attacher struct {
	store  Store
	owners *owner.Registry
	parser *Parser
	log    *slog.Logger
}

// NewAttacher returns an Attacher. owners may be nil, in which case any
// reference with an identity is accepted.
func NewAttacher(store Store, owners *owner.Registry, logger *slog.Logger) *Attacher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Attacher{
		store:  store,
		owners: owners,
		parser: NewParser(store, logger),
		log:    logger,
	}
}

// Attach parses value, gets or creates the typed value and the optional
// category, and records a new attribute for ref. An empty category means
// none. Identical (name, value) pairs share one stored typed value.
func (a *Attacher) Attach(ctx context.Context, ref owner.Ref, name, value, category string) (Attribute, error) {
	if err := a.owners.Validate(ctx, ref); err != nil {
		return Attribute{}, err
	}

	var cat *Category
	if category != "" {
		c, err := a.store.GetOrCreateCategory(ctx, category)
		if err != nil {
			return Attribute{}, fmt.Errorf("category %q: %w", category, err)
		}
		cat = &c
	}

	v, err := a.parser.GetOrCreate(ctx, name, value)
	if err != nil {
		return Attribute{}, err
	}

	created, err := a.store.CreateAttribute(ctx, Attribute{Category: cat, Value: v, Owner: ref})
	if err != nil {
		return Attribute{}, fmt.Errorf("creating attribute for %s: %w", ref, err)
	}
	a.log.Debug("attached attribute", "owner", ref.String(), "name", name, "value_id", v.ID, "attribute_id", created.ID)
	return created, nil
}
