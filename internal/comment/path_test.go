package comment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPath(t *testing.T, s string) Path {
	t.Helper()
	p, err := ParsePath(s)
	require.NoError(t, err)
	return p
}

func TestSegment_Next(t *testing.T) {
	tests := []struct {
		in, want Segment
	}{
		{"0001", "0002"},
		{"0009", "000A"},
		{"000Z", "0010"},
		{"0ZZZ", "1000"},
		{"ZZZY", "ZZZZ"},
	}
	for _, tt := range tests {
		got, err := tt.in.Next()
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Segment("ZZZZ").Next()
	assert.ErrorIs(t, err, ErrPathOverflow)

	_, err = Segment("00a1").Next()
	assert.Error(t, err)
}

func TestSegment_SortsInCreationOrder(t *testing.T) {
	seg := FirstSegment
	for i := 0; i < 100; i++ {
		next, err := seg.Next()
		require.NoError(t, err)
		assert.Less(t, string(seg), string(next))
		seg = next
	}
}

func TestParsePath(t *testing.T) {
	p := mustPath(t, "00010003000A")
	assert.Equal(t, Path{"0001", "0003", "000A"}, p)
	assert.Equal(t, 3, p.Depth())
	assert.Equal(t, "00010003000A", p.String())
	assert.Equal(t, Segment("000A"), p.Last())

	empty := mustPath(t, "")
	assert.Equal(t, 0, empty.Depth())
	assert.Equal(t, Segment(""), empty.Last())

	for _, bad := range []string{"001", "0001000", "00a1", "0001-002"} {
		_, err := ParsePath(bad)
		assert.Error(t, err, bad)
	}
}

func TestPath_Relations(t *testing.T) {
	root := mustPath(t, "0001")
	child := mustPath(t, "00010002")
	grandchild := mustPath(t, "000100020001")
	other := mustPath(t, "00020002")

	assert.Equal(t, root, child.Parent())
	assert.Equal(t, child, grandchild.Parent())
	assert.Equal(t, "", root.Parent().String())

	assert.True(t, grandchild.IsDescendantOf(root))
	assert.True(t, child.IsDescendantOf(root))
	assert.False(t, root.IsDescendantOf(root))
	assert.False(t, other.IsDescendantOf(root))
	assert.True(t, root.HasPrefix(root))
	assert.False(t, root.HasPrefix(child))
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	parent := mustPath(t, "00010002")
	a := parent.Child("0001")
	b := parent.Child("0002")

	assert.Equal(t, "000100020001", a.String())
	assert.Equal(t, "000100020002", b.String())
	assert.Equal(t, "00010002", parent.String())

	// appending to a parent view must not clobber the original
	p := a.Parent()
	_ = append(p, "ZZZZ")
	assert.Equal(t, "000100020001", a.String())
}

func TestPath_JSON(t *testing.T) {
	data, err := json.Marshal(mustPath(t, "00010002"))
	require.NoError(t, err)
	assert.JSONEq(t, `"00010002"`, string(data))

	var p Path
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, Path{"0001", "0002"}, p)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &p))
}
