package attr

import "context"

// UnitLookup finds units for the letter run that follows a number. Both
// methods return nil and no error when nothing matches; the first match by
// id wins.
type UnitLookup interface {
	// UnitByName matches units whose name and plural name both contain
	// text, case-insensitively.
	UnitByName(ctx context.Context, text string) (*Unit, error)
	// UnitByNameAndSymbol additionally requires the symbol to equal
	// symbol, case-insensitively.
	UnitByNameAndSymbol(ctx context.Context, text, symbol string) (*Unit, error)
}

// TokenPool is the shared pool of string tokens.
type TokenPool interface {
	// TokenContaining returns a token whose text contains text,
	// case-insensitively, or nil.
	TokenContaining(ctx context.Context, text string) (*StringToken, error)
	// CreateToken stores text as a new token. Concurrent calls with texts
	// equal up to case converge on one token.
	CreateToken(ctx context.Context, text string) (StringToken, error)
}

// ValuePool stores typed values keyed by (Variant, Name, Key).
type ValuePool interface {
	// GetOrCreateValue returns the stored value with v's identity, creating
	// it if absent. Existing values are never modified.
	GetOrCreateValue(ctx context.Context, v TypedValue) (TypedValue, error)
}

// CategoryPool stores attribute categories unique by name.
type CategoryPool interface {
	GetOrCreateCategory(ctx context.Context, name string) (Category, error)
}

// AttributeWriter persists attribute rows.
type AttributeWriter interface {
	CreateAttribute(ctx context.Context, a Attribute) (Attribute, error)
}

// ParserStore is what a Parser needs from storage.
type ParserStore interface {
	UnitLookup
	TokenPool
	ValuePool
}

// Store is what an Attacher needs from storage.
type Store interface {
	ParserStore
	CategoryPool
	AttributeWriter
}
