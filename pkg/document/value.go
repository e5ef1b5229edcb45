package document

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value. The set is closed: mutation
// and flattening code switches exhaustively over it.
type Kind int

const (
	KindNull Kind = iota
	KindMap
	KindSequence
	KindString
	KindInt
	KindFloat
	KindBool
)

// String returns the label shown in the status line.
func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindSequence:
		return "seq"
	case KindString:
		return "string"
	case KindInt, KindFloat:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// IsContainer reports whether the kind is Map or Sequence.
func (k Kind) IsContainer() bool {
	return k == KindMap || k == KindSequence
}

// MapEntry is one key/value pair of an ordered mapping.
type MapEntry struct {
	Key   string
	Value *Value
}

// Value is the logical document tree: a tagged union over mapping,
// sequence, and the scalar kinds. Mappings preserve insertion order.
// A Value graph is exclusively owned by its Document; the shadow tree is
// the read-only view handed to other layers.
type Value struct {
	kind    Kind
	str     string
	intVal  int64
	float   float64
	boolVal bool
	entries []MapEntry
	items   []*Value
}

func NewNull() *Value               { return &Value{kind: KindNull} }
func NewMap() *Value                { return &Value{kind: KindMap} }
func NewSequence() *Value           { return &Value{kind: KindSequence} }
func NewString(s string) *Value     { return &Value{kind: KindString, str: s} }
func NewInt(i int64) *Value         { return &Value{kind: KindInt, intVal: i} }
func NewFloat(f float64) *Value     { return &Value{kind: KindFloat, float: f} }
func NewBool(b bool) *Value         { return &Value{kind: KindBool, boolVal: b} }

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) Str() string    { return v.str }
func (v *Value) Int() int64     { return v.intVal }
func (v *Value) Float() float64 { return v.float }
func (v *Value) Bool() bool     { return v.boolVal }

// Entries returns the mapping entries in insertion order. Nil for non-maps.
func (v *Value) Entries() []MapEntry {
	if v.kind != KindMap {
		return nil
	}
	return v.entries
}

// Items returns the sequence elements. Nil for non-sequences.
func (v *Value) Items() []*Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.items
}

// Len returns the child count for containers and 0 otherwise.
func (v *Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.entries)
	case KindSequence:
		return len(v.items)
	}
	return 0
}

// get returns the mapping value for key.
func (v *Value) get(key string) (*Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// hasKey reports whether a mapping contains key.
func (v *Value) hasKey(key string) bool {
	_, ok := v.get(key)
	return ok
}

// appendEntry inserts at the end of the map order without a duplicate check;
// callers validate first.
func (v *Value) appendEntry(key string, child *Value) {
	v.entries = append(v.entries, MapEntry{Key: key, Value: child})
}

// removeKey deletes the entry for key, preserving the order of the rest.
func (v *Value) removeKey(key string) (*Value, bool) {
	for i, e := range v.entries {
		if e.Key == key {
			v.entries = append(v.entries[:i], v.entries[i+1:]...)
			return e.Value, true
		}
	}
	return nil, false
}

// removeAt deletes the sequence element at i; later elements shift down.
func (v *Value) removeAt(i int) {
	v.items = append(v.items[:i], v.items[i+1:]...)
}

// appendItem appends to a sequence.
func (v *Value) appendItem(child *Value) {
	v.items = append(v.items, child)
}

// replaceWith overwrites v's variant in place so parent references stay valid.
func (v *Value) replaceWith(other *Value) {
	*v = *other
}

// resolve walks path from v and returns the addressed node.
// Every failure wraps ErrNotFound with the offending segment.
func (v *Value) resolve(path Path) (*Value, error) {
	node := v
	for _, seg := range path {
		if seg.IsIndex {
			if node.kind != KindSequence {
				return nil, fmt.Errorf("%w: %q is not a sequence", ErrNotFound, seg.String())
			}
			if seg.Index < 0 || seg.Index >= len(node.items) {
				return nil, fmt.Errorf("%w: index %d out of range", ErrNotFound, seg.Index)
			}
			node = node.items[seg.Index]
			continue
		}
		if node.kind != KindMap {
			return nil, fmt.Errorf("%w: %q is not a mapping", ErrNotFound, seg.Key)
		}
		child, ok := node.get(seg.Key)
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrNotFound, seg.Key)
		}
		node = child
	}
	return node, nil
}

// canonFloat renders a float the way previews and serialization show it.
func canonFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
