package comment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StepLen is the width of one path segment.
const StepLen = 4

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrPathOverflow is returned when a node has used up every sibling segment.
var ErrPathOverflow = errors.New("no free sibling segment")

// Segment is one fixed-width base-36 step of a materialized path. Segments
// of siblings sort in creation order.
type Segment string

// FirstSegment is the segment of the first child under any parent.
const FirstSegment Segment = "0001"

// Valid reports whether s is StepLen characters of the path alphabet.
func (s Segment) Valid() bool {
	if len(s) != StepLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// Next returns the segment that follows s.
func (s Segment) Next() (Segment, error) {
	if !s.Valid() {
		return "", fmt.Errorf("invalid path segment %q", string(s))
	}
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		d := strings.IndexByte(alphabet, b[i])
		if d < len(alphabet)-1 {
			b[i] = alphabet[d+1]
			return Segment(b), nil
		}
		b[i] = alphabet[0]
	}
	return "", ErrPathOverflow
}

// Path is the full ancestry of a node, root segment first. A top-level
// comment has a path of depth 1.
type Path []Segment

// ParsePath splits the stored form of a path into segments.
func ParsePath(s string) (Path, error) {
	if len(s)%StepLen != 0 {
		return nil, fmt.Errorf("path %q: length is not a multiple of %d", s, StepLen)
	}
	p := make(Path, 0, len(s)/StepLen)
	for i := 0; i < len(s); i += StepLen {
		seg := Segment(s[i : i+StepLen])
		if !seg.Valid() {
			return nil, fmt.Errorf("path %q: invalid segment %q", s, string(seg))
		}
		p = append(p, seg)
	}
	return p, nil
}

func (p Path) String() string {
	var sb strings.Builder
	sb.Grow(len(p) * StepLen)
	for _, seg := range p {
		sb.WriteString(string(seg))
	}
	return sb.String()
}

func (p Path) Depth() int { return len(p) }

// Parent is p without its last segment. The parent of a top-level path is
// the empty path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last is the final segment of p, or "" for the empty path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Child returns a new path extending p by seg.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// HasPrefix reports whether q is p or one of its ancestors.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether p lies strictly below q.
func (p Path) IsDescendantOf(q Path) bool {
	return len(p) > len(q) && p.HasPrefix(q)
}

func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Path) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePath(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
