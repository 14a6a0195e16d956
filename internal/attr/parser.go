package attr

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// shortUnitRunes is the longest unit run that must also match a symbol.
// Short runs such as "м" are substrings of too many unit names.
const shortUnitRunes = 2

// Parser turns free text into typed values, resolving units and string
// tokens against its store.
type Parser struct {
	store ParserStore
	log   *slog.Logger
}

// NewParser returns a Parser over store. A nil logger means slog.Default().
func NewParser(store ParserStore, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{store: store, log: logger}
}

// ResolveUnit looks up the unit for a letter run taken from a numeric value.
// An empty run has no unit.
func (p *Parser) ResolveUnit(ctx context.Context, unitText string) (*Unit, error) {
	n := utf8.RuneCountInString(unitText)
	switch {
	case n == 0:
		return nil, nil
	case n > shortUnitRunes:
		return p.store.UnitByName(ctx, unitText)
	default:
		return p.store.UnitByNameAndSymbol(ctx, unitText, unitText)
	}
}

// Parse classifies input and builds the matching unsaved TypedValue labelled
// name. String values reuse an existing token when one contains the input and
// create one holding the raw input otherwise.
func (p *Parser) Parse(ctx context.Context, name, input string) (TypedValue, error) {
	c := Classify(input)

	switch c.Variant {
	case VariantInt, VariantFloat:
		unit, err := p.ResolveUnit(ctx, c.UnitText)
		if err != nil {
			return TypedValue{}, fmt.Errorf("resolving unit %q: %w", c.UnitText, err)
		}
		if unit == nil && c.UnitText != "" {
			p.log.Debug("no unit for value", "input", input, "unit_text", c.UnitText)
		}
		if c.Variant == VariantInt {
			return NewInt(name, c.Int, unit), nil
		}
		return NewFloat(name, c.Float, unit), nil

	case VariantBool:
		return NewBool(name, c.Bool), nil
	}

	token, err := p.store.TokenContaining(ctx, c.Text)
	if err != nil {
		return TypedValue{}, fmt.Errorf("looking up string token: %w", err)
	}
	if token == nil {
		created, err := p.store.CreateToken(ctx, c.Text)
		if err != nil {
			return TypedValue{}, fmt.Errorf("creating string token: %w", err)
		}
		p.log.Debug("created string token", "id", created.ID, "text", created.Text)
		token = &created
	}
	return NewString(name, *token), nil
}

// GetOrCreate parses input and returns the stored value with that identity.
func (p *Parser) GetOrCreate(ctx context.Context, name, input string) (TypedValue, error) {
	v, err := p.Parse(ctx, name, input)
	if err != nil {
		return TypedValue{}, err
	}
	stored, err := p.store.GetOrCreateValue(ctx, v)
	if err != nil {
		return TypedValue{}, fmt.Errorf("storing %s value %q: %w", v.Variant, name, err)
	}
	return stored, nil
}
