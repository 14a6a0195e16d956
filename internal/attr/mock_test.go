package attr

import (
	"context"
	"strings"
)

// MockStore is an in-memory Store. Case folding uses strings.ToLower, which
// is enough for the Latin and Cyrillic fixtures used here.
type MockStore struct {
	Units      []Unit
	Tokens     []StringToken
	Values     []TypedValue
	Categories []Category
	Attributes []Attribute
	Err        error
}

func (m *MockStore) UnitByName(ctx context.Context, text string) (*Unit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	text = strings.ToLower(text)
	for i := range m.Units {
		u := m.Units[i]
		if strings.Contains(strings.ToLower(u.Name), text) && strings.Contains(strings.ToLower(u.Plural), text) {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MockStore) UnitByNameAndSymbol(ctx context.Context, text, symbol string) (*Unit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	text = strings.ToLower(text)
	for i := range m.Units {
		u := m.Units[i]
		if strings.Contains(strings.ToLower(u.Name), text) &&
			strings.Contains(strings.ToLower(u.Plural), text) &&
			strings.EqualFold(u.Symbol, symbol) {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MockStore) TokenContaining(ctx context.Context, text string) (*StringToken, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	text = strings.ToLower(text)
	for i := range m.Tokens {
		if strings.Contains(strings.ToLower(m.Tokens[i].Text), text) {
			t := m.Tokens[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (m *MockStore) CreateToken(ctx context.Context, text string) (StringToken, error) {
	if m.Err != nil {
		return StringToken{}, m.Err
	}
	for _, t := range m.Tokens {
		if strings.EqualFold(t.Text, text) {
			return t, nil
		}
	}
	t := StringToken{ID: int64(len(m.Tokens) + 1), Text: text}
	m.Tokens = append(m.Tokens, t)
	return t, nil
}

func (m *MockStore) GetOrCreateValue(ctx context.Context, v TypedValue) (TypedValue, error) {
	if m.Err != nil {
		return TypedValue{}, m.Err
	}
	for _, existing := range m.Values {
		if existing.Variant == v.Variant && existing.Name == v.Name && existing.Key() == v.Key() {
			return existing, nil
		}
	}
	v.ID = int64(len(m.Values) + 1)
	m.Values = append(m.Values, v)
	return v, nil
}

func (m *MockStore) GetOrCreateCategory(ctx context.Context, name string) (Category, error) {
	if m.Err != nil {
		return Category{}, m.Err
	}
	for _, c := range m.Categories {
		if c.Name == name {
			return c, nil
		}
	}
	c := Category{ID: int64(len(m.Categories) + 1), Name: name}
	m.Categories = append(m.Categories, c)
	return c, nil
}

func (m *MockStore) CreateAttribute(ctx context.Context, a Attribute) (Attribute, error) {
	if m.Err != nil {
		return Attribute{}, m.Err
	}
	a.ID = int64(len(m.Attributes) + 1)
	m.Attributes = append(m.Attributes, a)
	return a, nil
}

func newMockStore() *MockStore {
	return &MockStore{
		Units: []Unit{
			{ID: 1, Name: "метр", Plural: "метры", Symbol: "м"},
			{ID: 2, Name: "Ампер", Plural: "амперы", Symbol: "А"},
			{ID: 3, Name: "ватт", Plural: "ватты", Symbol: "Вт"},
		},
	}
}
