package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine/catalog/internal/owner"
)

func TestNew(t *testing.T) {
	ref := owner.Ref{Kind: owner.Comment, ID: 3}

	r, err := New(1, ref, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultValue, r.Value)

	r, err = New(1, ref, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, r.Value)

	_, err = New(1, ref, 11)
	assert.ErrorIs(t, err, ErrValueRange)

	_, err = New(1, ref, -1)
	assert.ErrorIs(t, err, ErrValueRange)

	var invalid *owner.InvalidOwnerError
	_, err = New(0, ref, 4)
	assert.ErrorAs(t, err, &invalid)

	_, err = New(1, owner.Ref{Kind: owner.Comment}, 4)
	assert.ErrorAs(t, err, &invalid)
}

func TestMean(t *testing.T) {
	assert.Nil(t, Mean([]int{}))
	assert.InDelta(t, 2.5, *Mean([]int{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, 0.25, *Mean([]float64{0.5, 0}), 1e-9)
}

func TestAggregate(t *testing.T) {
	assert.Nil(t, Aggregate(nil))

	got := Aggregate([]Rating{{Value: 9}, {Value: 6}})
	require.NotNil(t, got)
	assert.InDelta(t, 7.5, *got, 1e-9)
}
