// Package attr implements typed attribute values: classification of free
// text into integer, float, boolean or string values, and the attachment of
// those values to arbitrary owning entities.
package attr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"magazine/catalog/internal/owner"
)

// Unit is a unit of measurement. Name, Plural and Symbol are each unique.
type Unit struct {
	ID     int64  `json:"id" toml:"-" yaml:"-"`
	Name   string `json:"name" toml:"name" yaml:"name"`
	Plural string `json:"name_plural" toml:"name_plural" yaml:"name_plural"`
	Symbol string `json:"symbol" toml:"symbol" yaml:"symbol"`
}

func (u Unit) String() string {
	return fmt.Sprintf("%s - %s", u.Name, u.Symbol)
}

// MaxSymbolRunes is the widest unit symbol the catalog accepts.
const MaxSymbolRunes = 5

var ErrInvalidUnit = errors.New("invalid unit")

// ValidateUnit checks a single unit: every field is required and the symbol
// is at most MaxSymbolRunes characters. Uniqueness is left to the caller.
func ValidateUnit(u Unit) error {
	fields := []struct{ name, value string }{
		{"name", u.Name},
		{"name_plural", u.Plural},
		{"symbol", u.Symbol},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidUnit, f.name)
		}
	}
	if n := utf8.RuneCountInString(u.Symbol); n > MaxSymbolRunes {
		return fmt.Errorf("%w: symbol %q longer than %d characters", ErrInvalidUnit, u.Symbol, MaxSymbolRunes)
	}
	return nil
}

// Category is an optional grouping label for attributes.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StringToken is a deduplicated piece of text shared by string values.
type StringToken struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// Variant discriminates the concrete kind of a TypedValue.
type Variant string

const (
	VariantInt    Variant = "int"
	VariantFloat  Variant = "float"
	VariantBool   Variant = "bool"
	VariantString Variant = "str"
)

// TypedValue is a tagged union: exactly one of Int, Float, Bool or Token is
// meaningful, selected by Variant. Unit applies to numeric variants only.
type TypedValue struct {
	ID      int64
	Name    string
	Variant Variant
	Int     int64
	Float   float64
	Bool    bool
	Unit    *Unit
	Token   *StringToken
}

func NewInt(name string, v int64, unit *Unit) TypedValue {
	return TypedValue{Name: name, Variant: VariantInt, Int: v, Unit: unit}
}

func NewFloat(name string, v float64, unit *Unit) TypedValue {
	return TypedValue{Name: name, Variant: VariantFloat, Float: v, Unit: unit}
}

func NewBool(name string, v bool) TypedValue {
	return TypedValue{Name: name, Variant: VariantBool, Bool: v}
}

func NewString(name string, token StringToken) TypedValue {
	return TypedValue{Name: name, Variant: VariantString, Token: &token}
}

// Value returns the payload of the active variant.
func (v TypedValue) Value() any {
	switch v.Variant {
	case VariantInt:
		return v.Int
	case VariantFloat:
		return v.Float
	case VariantBool:
		return v.Bool
	case VariantString:
		if v.Token != nil {
			return v.Token.Text
		}
	}
	return nil
}

// Key is the identity of the value within its (Variant, Name) pair. Two
// values with equal Variant, Name and Key are the same stored record. Unit
// and Token must already carry their store ids.
func (v TypedValue) Key() string {
	switch v.Variant {
	case VariantInt:
		return strconv.FormatInt(v.Int, 10) + "|u" + strconv.FormatInt(v.unitID(), 10)
	case VariantFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64) + "|u" + strconv.FormatInt(v.unitID(), 10)
	case VariantBool:
		return strconv.FormatBool(v.Bool)
	case VariantString:
		var id int64
		if v.Token != nil {
			id = v.Token.ID
		}
		return "t" + strconv.FormatInt(id, 10)
	}
	return ""
}

func (v TypedValue) unitID() int64 {
	if v.Unit == nil {
		return 0
	}
	return v.Unit.ID
}

func (v TypedValue) String() string {
	switch v.Variant {
	case VariantInt, VariantFloat:
		s := fmt.Sprint(v.Value())
		if v.Unit != nil {
			s += " " + v.Unit.Symbol
		}
		return s
	case VariantBool:
		if v.Bool {
			return "да"
		}
		return "нет"
	}
	return fmt.Sprint(v.Value())
}

type typedValueJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
	Unit  *Unit  `json:"unit,omitempty"`
}

func (v TypedValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(typedValueJSON{
		ID:    v.ID,
		Name:  v.Name,
		Type:  string(v.Variant),
		Value: v.Value(),
		Unit:  v.Unit,
	})
}

// Attribute binds a typed value, and optionally a category, to an owner.
type Attribute struct {
	ID       int64      `json:"id"`
	Category *Category  `json:"category,omitempty"`
	Value    TypedValue `json:"data_type"`
	Owner    owner.Ref  `json:"owner"`
}
