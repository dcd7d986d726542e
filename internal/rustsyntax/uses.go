package rustsyntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Import is one flattened leaf of a use-declaration: a fully-qualified
// "::"-segmented dotted path, plus whether it was brought in under a
// rename (in which case it still flags under the original name, per
// the import-expansion rule below).
type Import struct {
	Node     *sitter.Node // the use_declaration this leaf came from
	Path     string       // e.g. "sqlx::Pool" or "a::b::*"
	Original string       // pre-rename name, same as last segment of Path when no rename
	Renamed  bool
	Line     int
	Column   int
}

// Imports returns every flattened import leaf in the tree: grouped/nested
// use-trees (`a::{b::c, d}`) are expanded into one Import per leaf, glob
// leaves (`a::*`) become one Import with Path ending in "*".
func (t *Tree) Imports() []Import {
	var out []Import
	for _, decl := range FindAll(t.Root, "use_declaration") {
		arg := decl.ChildByFieldName("argument")
		if arg == nil {
			continue
		}
		out = append(out, t.flattenUseTree(decl, arg, nil)...)
	}
	return out
}

// flattenUseTree recursively expands a use-tree node into leaf Imports,
// prefix being the "::"-joined path segments accumulated so far.
func (t *Tree) flattenUseTree(decl, n *sitter.Node, prefix []string) []Import {
	switch n.Type() {
	case "identifier", "self", "crate", "super":
		name := t.Text(n)
		line, col := t.Pos(n)
		path := strings.Join(append(append([]string{}, prefix...), name), "::")
		return []Import{{Node: decl, Path: path, Original: name, Line: line, Column: col}}

	case "scoped_identifier":
		// path::name — walk left-to-right collecting segments, then treat
		// the final name as the leaf.
		segs, leafNode := flattenScopedPath(t, n)
		full := strings.Join(append(append([]string{}, prefix...), segs...), "::")
		line, col := t.Pos(leafNode)
		last := segs[len(segs)-1]
		return []Import{{Node: decl, Path: full, Original: last, Line: line, Column: col}}

	case "use_wildcard":
		// a::* — child 0 may be the scoped path before the star.
		var segs []string
		if path := n.ChildByFieldName("path"); path != nil {
			segs = pathSegments(t, path)
		} else if c := n.Child(0); c != nil && c.Type() != "*" {
			segs = pathSegments(t, c)
		}
		full := strings.Join(append(append([]string{}, prefix...), append(segs, "*")...), "::")
		line, col := t.Pos(n)
		return []Import{{Node: decl, Path: full, Original: "*", Line: line, Column: col}}

	case "use_as_clause":
		path := n.ChildByFieldName("path")
		alias := n.ChildByFieldName("alias")
		if path == nil {
			return nil
		}
		leaves := t.flattenUseTree(decl, path, prefix)
		if alias != nil && len(leaves) == 1 {
			leaves[0].Renamed = true
			// Path keeps the original name: "Renames flag under
			// the original name."
		}
		return leaves

	case "use_list":
		var out []Import
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch c.Type() {
			case "{", "}", ",":
				continue
			default:
				out = append(out, t.flattenUseTree(decl, c, prefix)...)
			}
		}
		return out

	case "scoped_use_list":
		path := n.ChildByFieldName("path")
		list := n.ChildByFieldName("list")
		var newPrefix []string
		newPrefix = append(newPrefix, prefix...)
		if path != nil {
			newPrefix = append(newPrefix, pathSegments(t, path)...)
		}
		if list == nil {
			return nil
		}
		return t.flattenUseTree(decl, list, newPrefix)

	default:
		// Unrecognized use-tree shape (grammar drift, or a bare "(" token
		// child): skip rather than guess.
		return nil
	}
}

// pathSegments renders a scoped_identifier / identifier node as its
// "::"-segments, without emitting an Import for it — used for the prefix
// of a scoped_use_list or use_wildcard.
func pathSegments(t *Tree, n *sitter.Node) []string {
	if n.Type() == "identifier" || n.Type() == "self" || n.Type() == "crate" || n.Type() == "super" {
		return []string{t.Text(n)}
	}
	segs, _ := flattenScopedPath(t, n)
	return segs
}

// flattenScopedPath walks a left-associative scoped_identifier chain into
// its ordered segments, returning the final (rightmost) identifier node too.
func flattenScopedPath(t *Tree, n *sitter.Node) ([]string, *sitter.Node) {
	path := n.ChildByFieldName("path")
	name := n.ChildByFieldName("name")
	if name == nil {
		name = n.Child(int(n.ChildCount()) - 1)
	}
	if path == nil {
		return []string{t.Text(name)}, name
	}
	var segs []string
	switch path.Type() {
	case "identifier", "self", "crate", "super":
		segs = []string{t.Text(path)}
	default:
		segs, _ = flattenScopedPath(t, path)
	}
	return append(segs, t.Text(name)), name
}
