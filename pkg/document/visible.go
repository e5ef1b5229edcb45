package document

import "strings"

// RootLabel is the display key of the synthetic root row.
const RootLabel = "(root)"

// VisibleRow is one entry of the addressable projection of the shadow tree
// after expand/search filtering. Row indices are not stable across
// rebuilds; persist a Path across mutations, never an index.
type VisibleRow struct {
	Path        Path
	Depth       int
	DisplayKey  string
	Preview     string
	Kind        Kind
	IsContainer bool
}

// Flatten produces the ordered visible rows for a shadow tree given the
// expand-state (set of expanded container dot paths; the root is always
// implicitly expanded) and an optional search query.
//
// With a query active, manual expand-state is ignored: every ancestor of a
// match is force-expanded so a search can never hide its own matches
// behind a collapsed container, and subtrees without matches are pruned.
func Flatten(root TreeNode, expanded map[string]struct{}, query string) []VisibleRow {
	var rows []VisibleRow
	q := strings.ToLower(strings.TrimSpace(query))
	var ancestors map[string]struct{}
	if q != "" {
		ancestors = make(map[string]struct{})
		collectMatchAncestors(root, q, ancestors)
	}
	walkVisible(root, expanded, q, ancestors, 0, &rows)
	return rows
}

// collectMatchAncestors marks every node that matches q or has a matching
// descendant. Returns whether the subtree rooted at node contains a match.
func collectMatchAncestors(node TreeNode, q string, marked map[string]struct{}) bool {
	matched := nodeMatches(node, q)
	for _, child := range node.Children {
		if collectMatchAncestors(child, q, marked) {
			matched = true
		}
	}
	if matched && !node.Path.IsRoot() {
		marked[node.Path.DotPath()] = struct{}{}
	}
	return matched
}

func walkVisible(node TreeNode, expanded map[string]struct{}, q string, ancestors map[string]struct{}, depth int, rows *[]VisibleRow) {
	if node.Path.IsRoot() {
		// The root is addressable only as a container, so top-level
		// children can be added to it; a scalar root is not a row.
		if node.Kind.IsContainer() {
			*rows = append(*rows, VisibleRow{
				Path:        Root,
				DisplayKey:  RootLabel,
				Kind:        node.Kind,
				IsContainer: true,
			})
		}
	} else {
		if q != "" {
			if _, isAncestor := ancestors[node.Path.DotPath()]; !isAncestor && !nodeMatches(node, q) {
				return
			}
		}
		*rows = append(*rows, VisibleRow{
			Path:        node.Path,
			Depth:       depth,
			DisplayKey:  node.Key,
			Preview:     node.Preview,
			Kind:        node.Kind,
			IsContainer: node.Kind.IsContainer(),
		})
	}

	var descend bool
	if q != "" {
		if node.Path.IsRoot() {
			descend = true
		} else {
			_, descend = ancestors[node.Path.DotPath()]
		}
	} else if node.Path.IsRoot() {
		descend = true
	} else {
		_, descend = expanded[node.Path.DotPath()]
	}
	if !descend {
		return
	}
	for _, child := range node.Children {
		walkVisible(child, expanded, q, ancestors, depth+1, rows)
	}
}

// nodeMatches reports whether the node's dot path or display key contains
// q (already lowercased) case-insensitively.
func nodeMatches(node TreeNode, q string) bool {
	return strings.Contains(strings.ToLower(node.Path.DotPath()), q) ||
		strings.Contains(strings.ToLower(node.Key), q)
}

// MatchesRow is nodeMatches over a flattened row, used to compute the
// match index list alongside the row list.
func MatchesRow(row VisibleRow, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(row.Path.DotPath()), q) ||
		strings.Contains(strings.ToLower(row.DisplayKey), q)
}

// RowIndexByPath finds the row addressing path, or -1. Exact path
// equality; this is how selection survives rebuilds.
func RowIndexByPath(rows []VisibleRow, path Path) int {
	for i, row := range rows {
		if row.Path.Equal(path) {
			return i
		}
	}
	return -1
}
