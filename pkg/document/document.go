// Package document owns the in-memory YAML value tree being edited: the
// Path abstraction, the scalar codec, the yaml.v3 parse/serialize boundary,
// path-addressed mutations, and the derived shadow tree / visible-row
// projection consumed by the UI.
package document

import (
	"fmt"
	"os"
)

// Document owns a Value tree and the identity of its backing file.
// All mutations validate before touching the tree, so a failed operation
// leaves the document unchanged.
type Document struct {
	root     *Value
	filePath string
}

// LoadResult is the outcome of reading a file: a parse failure is data, not
// a fatal condition. When ParseErr is non-empty the document root is null
// and Raw holds the original text for the raw fallback editor.
type LoadResult struct {
	Doc      *Document
	ParseErr string
	Raw      string
}

// LoadFile reads and parses path. Only I/O failures are returned as errors;
// a file that does not parse still opens, in raw fallback form.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(data)
	root, perr := Parse(text)
	if perr != nil {
		return &LoadResult{
			Doc:      &Document{root: NewNull(), filePath: path},
			ParseErr: perr.Error(),
			Raw:      text,
		}, nil
	}
	return &LoadResult{Doc: &Document{root: root, filePath: path}}, nil
}

// Empty returns a document with a null root and no backing file, used for
// the picker-first startup state.
func Empty() *Document {
	return &Document{root: NewNull()}
}

// New wraps an existing root, mainly for tests.
func New(root *Value, filePath string) *Document {
	return &Document{root: root, filePath: filePath}
}

// FilePath is the backing file, empty when no file has been opened.
func (d *Document) FilePath() string { return d.filePath }

// Root exposes the value tree for the codec and tests. Mutation goes
// through the path-addressed operations below.
func (d *Document) Root() *Value { return d.root }

// Save serializes the tree and writes it to the backing file.
// No retry; the caller reports the failure and stays dirty.
func (d *Document) Save() error {
	text, err := Serialize(d.root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.filePath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", d.filePath, err)
	}
	return nil
}

// EditValue replaces the node at path with a scalar value.
func (d *Document) EditValue(path Path, v *Value) error {
	node, err := d.root.resolve(path)
	if err != nil {
		return err
	}
	node.replaceWith(v)
	return nil
}

// RenameKey renames the mapping entry addressed by path. The renamed entry
// moves to the end of the map order; that is deliberate, observable
// behavior, not an accident of implementation.
func (d *Document) RenameKey(path Path, newKey string) error {
	if path.IsRoot() {
		return fmt.Errorf("%w: root has no key", ErrInvalidTarget)
	}
	if !path.LastIsKey() {
		return fmt.Errorf("%w: sequence elements have no key", ErrInvalidTarget)
	}
	parentPath, last := path.SplitParent()
	parent, err := d.root.resolve(parentPath)
	if err != nil {
		return err
	}
	if parent.Kind() != KindMap {
		return fmt.Errorf("%w: parent is not a mapping", ErrInvalidTarget)
	}
	if parent.hasKey(newKey) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, newKey)
	}
	value, ok := parent.removeKey(last.Key)
	if !ok {
		return fmt.Errorf("%w: key %q", ErrNotFound, last.Key)
	}
	parent.appendEntry(newKey, value)
	return nil
}

// AddMappingChild inserts key at the end of the mapping at path.
func (d *Document) AddMappingChild(path Path, key string, v *Value) error {
	node, err := d.root.resolve(path)
	if err != nil {
		return err
	}
	if node.Kind() != KindMap {
		return fmt.Errorf("%w: node is not a mapping", ErrInvalidTarget)
	}
	if node.hasKey(key) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	node.appendEntry(key, v)
	return nil
}

// AddSequenceValue appends v to the sequence at path.
func (d *Document) AddSequenceValue(path Path, v *Value) error {
	node, err := d.root.resolve(path)
	if err != nil {
		return err
	}
	if node.Kind() != KindSequence {
		return fmt.Errorf("%w: node is not a sequence", ErrInvalidTarget)
	}
	node.appendItem(v)
	return nil
}

// AddSequenceEmptyMap appends an empty mapping to the sequence at path and
// returns the new element's path, so the caller can immediately start key
// entry on it.
func (d *Document) AddSequenceEmptyMap(path Path) (Path, error) {
	node, err := d.root.resolve(path)
	if err != nil {
		return nil, err
	}
	if node.Kind() != KindSequence {
		return nil, fmt.Errorf("%w: node is not a sequence", ErrInvalidTarget)
	}
	node.appendItem(NewMap())
	return path.ChildIndex(node.Len() - 1), nil
}

// ConvertToEmptyMap replaces the node at path with an empty mapping,
// enabling "add first child" on a previously childless node.
func (d *Document) ConvertToEmptyMap(path Path) error {
	node, err := d.root.resolve(path)
	if err != nil {
		return err
	}
	node.replaceWith(NewMap())
	return nil
}

// DeleteNode removes the entry or element addressed by path from its
// parent. Deleting a sequence element shifts later siblings down one
// index: paths to them recorded before the delete are stale and must be
// re-resolved from the rebuilt tree.
func (d *Document) DeleteNode(path Path) error {
	if path.IsRoot() {
		return fmt.Errorf("%w: cannot delete root", ErrInvalidTarget)
	}
	parentPath, last := path.SplitParent()
	parent, err := d.root.resolve(parentPath)
	if err != nil {
		return err
	}
	switch {
	case parent.Kind() == KindMap && !last.IsIndex:
		if _, ok := parent.removeKey(last.Key); !ok {
			return fmt.Errorf("%w: key %q", ErrNotFound, last.Key)
		}
		return nil
	case parent.Kind() == KindSequence && last.IsIndex:
		if last.Index < 0 || last.Index >= parent.Len() {
			return fmt.Errorf("%w: index %d out of range", ErrNotFound, last.Index)
		}
		parent.removeAt(last.Index)
		return nil
	default:
		return fmt.Errorf("%w: segment does not match parent kind", ErrInvalidTarget)
	}
}
