package owner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Ref
		wantErr bool
	}{
		{name: "product", in: "product:12", want: Ref{Kind: Product, ID: 12}},
		{name: "upper-case kind", in: "Comment:3", want: Ref{Kind: Comment, ID: 3}},
		{name: "surrounding spaces", in: "  user:7 ", want: Ref{Kind: User, ID: 7}},
		{name: "missing colon", in: "product12", wantErr: true},
		{name: "bad id", in: "product:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), Ref{Kind: got.Kind, ID: got.ID}.String())
		})
	}
}

func TestRegistry_Validate(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	reg.Register(Comment, func(ctx context.Context, id int64) (bool, error) {
		return id == 1, nil
	})
	reg.Register(User, func(ctx context.Context, id int64) (bool, error) {
		return false, errors.New("boom")
	})

	assert.NoError(t, reg.Validate(ctx, Ref{Kind: Product, ID: 99}), "kinds without resolver pass on identity")
	assert.NoError(t, reg.Validate(ctx, Ref{Kind: Comment, ID: 1}))

	var invalid *InvalidOwnerError
	require.ErrorAs(t, reg.Validate(ctx, Ref{Kind: Comment, ID: 2}), &invalid)
	assert.Equal(t, "entity does not exist", invalid.Reason)

	require.ErrorAs(t, reg.Validate(ctx, Ref{Kind: Product}), &invalid)
	assert.Equal(t, "entity has no identity", invalid.Reason)

	require.ErrorAs(t, reg.Validate(ctx, Ref{Kind: "spaceship", ID: 1}), &invalid)
	assert.Equal(t, "unknown entity kind", invalid.Reason)

	err := reg.Validate(ctx, Ref{Kind: User, ID: 1})
	require.Error(t, err)
	assert.False(t, errors.As(err, &invalid), "resolver failures are not owner errors")
}

func TestRegistry_NilAcceptsIdentity(t *testing.T) {
	var reg *Registry
	assert.NoError(t, reg.Validate(context.Background(), Ref{Kind: Warehouse, ID: 4}))
}
