package attr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	p := NewParser(store, nil)

	meter := store.Units[0]
	ampere := store.Units[1]

	tests := []struct {
		name    string
		in      string
		variant Variant
		value   any
		unit    *Unit
	}{
		{name: "integer without unit", in: "123", variant: VariantInt, value: int64(123)},
		{name: "integer with short symbol", in: "12м", variant: VariantInt, value: int64(12), unit: &meter},
		{name: "integer with spaced capitalised name", in: "12 Метр", variant: VariantInt, value: int64(12), unit: &meter},
		{name: "integer with long name", in: "12ампер", variant: VariantInt, value: int64(12), unit: &ampere},
		{name: "float without unit", in: "123.45", variant: VariantFloat, value: 123.45},
		{name: "float with unit name", in: "123.45метр", variant: VariantFloat, value: 123.45, unit: &meter},
		{name: "float with upper-case symbol", in: "123.45А", variant: VariantFloat, value: 123.45, unit: &ampere},
		{name: "unknown long unit keeps number", in: "7 штук", variant: VariantInt, value: int64(7)},
		{name: "short run needs exact symbol", in: "5 ме", variant: VariantInt, value: int64(5)},
		{name: "yes", in: "да", variant: VariantBool, value: true},
		{name: "present", in: "есть", variant: VariantBool, value: true},
		{name: "no", in: "нет", variant: VariantBool, value: false},
		{name: "string", in: "синий", variant: VariantString, value: "синий"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := p.Parse(ctx, "Характеристика", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, v.Variant)
			assert.Equal(t, tt.value, v.Value())
			assert.Equal(t, "Характеристика", v.Name)
			assert.Equal(t, tt.unit, v.Unit)
		})
	}
}

func TestParser_UnitMatchRules(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	p := NewParser(store, nil)

	for _, u := range store.Units {
		for _, unitText := range []string{strings.ToLower(u.Name), strings.ToLower(u.Symbol)} {
			v, err := p.Parse(ctx, "x", "10"+unitText)
			require.NoError(t, err)
			if v.Unit == nil {
				continue
			}
			folded := strings.ToLower(unitText)
			if len([]rune(unitText)) > 2 {
				assert.Contains(t, strings.ToLower(v.Unit.Name), folded)
				assert.Contains(t, strings.ToLower(v.Unit.Plural), folded)
			} else {
				assert.Equal(t, folded, strings.ToLower(v.Unit.Symbol))
			}
		}
	}
}

func TestParser_StringTokensAreShared(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	p := NewParser(store, nil)

	first, err := p.Parse(ctx, "Цвет", "Тёмно-синий")
	require.NoError(t, err)
	require.NotNil(t, first.Token)
	assert.Equal(t, "Тёмно-синий", first.Token.Text, "token keeps the raw text")

	second, err := p.Parse(ctx, "Оттенок", "тёмно-синий")
	require.NoError(t, err)
	assert.Equal(t, first.Token.ID, second.Token.ID)

	partial, err := p.Parse(ctx, "Цвет", "синий")
	require.NoError(t, err)
	assert.Equal(t, first.Token.ID, partial.Token.ID, "containment reuses the longer token")

	assert.Len(t, store.Tokens, 1)
}

func TestParser_StoreErrorsSurface(t *testing.T) {
	store := newMockStore()
	store.Err = errors.New("disk on fire")
	p := NewParser(store, nil)

	_, err := p.Parse(context.Background(), "x", "12 метр")
	assert.ErrorIs(t, err, store.Err)

	_, err = p.Parse(context.Background(), "x", "слово")
	assert.ErrorIs(t, err, store.Err)

	v, err := p.Parse(context.Background(), "x", "да")
	require.NoError(t, err, "boolean values need no storage")
	assert.Equal(t, true, v.Value())
}

func TestParser_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	p := NewParser(store, nil)

	a, err := p.GetOrCreate(ctx, "Длина", "12м")
	require.NoError(t, err)
	b, err := p.GetOrCreate(ctx, "Длина", "12 метр")
	require.NoError(t, err)
	c, err := p.GetOrCreate(ctx, "Ширина", "12м")
	require.NoError(t, err)

	assert.NotZero(t, a.ID)
	assert.Equal(t, a.ID, b.ID, "same name, value and unit")
	assert.NotEqual(t, a.ID, c.ID, "name is part of the identity")
}
