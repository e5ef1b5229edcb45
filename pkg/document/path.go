package document

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a mapping key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment returns a segment addressing a mapping entry by key.
func KeySegment(name string) Segment {
	return Segment{Key: name}
}

// IndexSegment returns a segment addressing a sequence element by position.
func IndexSegment(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// String renders the segment the way it appears in a dot path.
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path addresses a node from the document root as an ordered list of
// segments. The zero value (nil) is the root.
//
// Paths are values: Child* return extended copies and never alias the
// receiver's backing array.
type Path []Segment

// Root is the empty path.
var Root = Path(nil)

// DotPath joins segments with '.', keys verbatim, indices in decimal.
// Keys containing a literal '.' are not escaped, so two distinct paths can
// share a dot string; callers using dot strings as identity keys inherit
// that ambiguity. See the known-edge-case test in visible_test.go.
func (p Path) DotPath() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Depth is the segment count; the root has depth 0.
func (p Path) Depth() int {
	return len(p)
}

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// ChildKey returns a new path with a key segment appended.
func (p Path) ChildKey(name string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, KeySegment(name))
}

// ChildIndex returns a new path with an index segment appended.
func (p Path) ChildIndex(i int) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, IndexSegment(i))
}

// SplitParent returns the parent path and the final segment.
// Callers must check IsRoot first; the root has no parent.
func (p Path) SplitParent() (Path, Segment) {
	if len(p) == 0 {
		panic("document: SplitParent on root path")
	}
	parent := make(Path, len(p)-1)
	copy(parent, p[:len(p)-1])
	return parent, p[len(p)-1]
}

// LastIsKey reports whether the final segment addresses a mapping entry.
// False for the root.
func (p Path) LastIsKey() bool {
	return len(p) > 0 && !p[len(p)-1].IsIndex
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
