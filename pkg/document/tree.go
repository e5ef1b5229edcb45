package document

import (
	"github.com/mattn/go-runewidth"
)

// labelWidth caps the display label derived from a scalar preview.
const labelWidth = 40

// TreeNode is the read-only shadow of a document node: path-annotated,
// typed, with a precomputed preview. The whole shadow tree is rebuilt from
// the Document after every mutation; it is always a pure function of the
// current value tree, which keeps consistency trivial at the cost of an
// O(document) rebuild.
type TreeNode struct {
	Path     Path
	Key      string
	Kind     Kind
	Preview  string
	Children []TreeNode
}

// BuildTree derives the shadow tree from the document root.
func (d *Document) BuildTree() TreeNode {
	return buildTreeNode(Root, "", d.root)
}

func buildTreeNode(path Path, key string, v *Value) TreeNode {
	switch v.Kind() {
	case KindMap:
		node := TreeNode{Path: path, Key: key, Kind: KindMap}
		for _, e := range v.Entries() {
			node.Children = append(node.Children, buildTreeNode(path.ChildKey(e.Key), e.Key, e.Value))
		}
		return node
	case KindSequence:
		node := TreeNode{Path: path, Key: key, Kind: KindSequence}
		for i, item := range v.Items() {
			node.Children = append(node.Children, buildTreeNode(path.ChildIndex(i), displayLabel(item), item))
		}
		return node
	default:
		return TreeNode{Path: path, Key: key, Kind: v.Kind(), Preview: Preview(v)}
	}
}

// displayLabel names a sequence element: the first key for mappings, the
// recursive first element for sequences, a width-capped preview for
// scalars. No bare indices; the path carries those.
func displayLabel(v *Value) string {
	switch v.Kind() {
	case KindMap:
		entries := v.Entries()
		if len(entries) == 0 {
			return "{}"
		}
		return entries[0].Key
	case KindSequence:
		items := v.Items()
		if len(items) == 0 {
			return "[]"
		}
		return displayLabel(items[0])
	default:
		return runewidth.Truncate(Preview(v), labelWidth, "…")
	}
}
