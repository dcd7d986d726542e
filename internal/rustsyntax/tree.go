// Package rustsyntax parses Rust-shaped source into a concrete syntax tree
// and offers the small set of tree-walking primitives the built-in rules
// (internal/builtin) and the suppression system (internal/suppress) need:
// locating calls, macro invocations, use-declarations, item declarations,
// and attribute lists. It stands in for the full AST a real frontend assumes
// for the primary language, using a real syntax-tree library — tree-sitter
// — rather than a hand-rolled tokenizer.
package rustsyntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Tree is a parsed file: the tree-sitter root node plus the original bytes,
// kept together because every node's text is a slice of Source.
type Tree struct {
	Root   *sitter.Node
	Source []byte
}

// Parse parses Rust-shaped source. A non-nil error means the file could not
// be parsed at all (the parser returned an error or no tree); a tree with
// syntax-error nodes inside it is still returned rather than treated as a
// parse failure — rules are tolerant of partially-malformed input the way
// a real architecture linter must be when run mid-edit.
func Parse(source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	t, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing rust source: %w", err)
	}
	if t == nil || t.RootNode() == nil {
		return nil, fmt.Errorf("parsing rust source: empty tree")
	}
	return &Tree{Root: t.RootNode(), Source: source}, nil
}

// Text returns the source slice a node spans.
func (t *Tree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.Source)
}

// Pos returns the 1-indexed (line, column) of a node's start, reconciling
// tree-sitter's 0-indexed point with Location's 1-indexed convention:
// column is the parser column plus one.
func (t *Tree) Pos(n *sitter.Node) (line, column int) {
	p := n.StartPoint()
	return int(p.Row) + 1, int(p.Column) + 1
}

// Walk visits every node in the tree in depth-first pre-order. visit
// returns false to skip a node's children.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), visit)
	}
}

// FindAll returns every node of the given tree-sitter node type, in
// document order.
func FindAll(root *sitter.Node, nodeType string) []*sitter.Node {
	var out []*sitter.Node
	Walk(root, func(n *sitter.Node) bool {
		if n.Type() == nodeType {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Parent returns the first ancestor of n whose type is one of kinds, or nil.
func Parent(n *sitter.Node, kinds ...string) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		for _, k := range kinds {
			if p.Type() == k {
				return p
			}
		}
	}
	return nil
}
