package rustsyntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// AttributeStack returns every attribute_item immediately preceding n among
// its siblings, earliest first. Used both for suppression scanning (which
// must start from the earliest attribute line) and for detecting
// derive/doc attributes (AL005, AL012).
func AttributeStack(n *sitter.Node) []*sitter.Node {
	var attrs []*sitter.Node
	for prev := n.PrevSibling(); prev != nil && prev.Type() == "attribute_item"; prev = prev.PrevSibling() {
		attrs = append([]*sitter.Node{prev}, attrs...)
	}
	return attrs
}

// EarliestLine returns the 1-indexed line of the first attribute preceding
// n, or n's own line if it carries none.
func (t *Tree) EarliestLine(n *sitter.Node) int {
	attrs := AttributeStack(n)
	if len(attrs) == 0 {
		line, _ := t.Pos(n)
		return line
	}
	line, _ := t.Pos(attrs[0])
	return line
}

// HasDeriveContaining reports whether any attribute in attrs is a
// `#[derive(...)]` whose argument list contains ident as a token — a
// substring/token check, not a full parse of the derive list (see
// DESIGN.md's Open Question on the require-thiserror heuristic).
func (t *Tree) HasDeriveContaining(attrs []*sitter.Node, ident string) bool {
	for _, a := range attrs {
		text := t.Text(a)
		if !strings.Contains(text, "derive") {
			continue
		}
		if containsIdentToken(text, ident) {
			return true
		}
	}
	return false
}

// HasDocAttribute reports whether item n carries a `#[doc = "..."]`
// attribute or a doc comment (`///` / `//!`) immediately preceding it.
func (t *Tree) HasDocAttribute(n *sitter.Node) bool {
	for _, a := range AttributeStack(n) {
		if strings.Contains(t.Text(a), "doc") {
			return true
		}
	}
	for prev := n.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		switch prev.Type() {
		case "line_comment":
			text := t.Text(prev)
			if strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!") {
				return true
			}
			continue
		case "attribute_item":
			continue
		}
		break
	}
	return false
}

// containsIdentToken reports whether ident appears in text as a standalone
// identifier token (not as part of a longer identifier).
func containsIdentToken(text, ident string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], ident)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(ident)
		beforeOK := start == 0 || !isIdentByte(text[start-1])
		afterOK := end == len(text) || !isIdentByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// IsPublic reports whether an item node carries a `pub` visibility_modifier
// as an immediate child.
func (t *Tree) IsPublic(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "visibility_modifier" {
			return true
		}
	}
	return false
}

// ItemName returns the "name" field's text for struct/enum/function items,
// or "" if absent.
func (t *Tree) ItemName(n *sitter.Node) string {
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return t.Text(name)
}

// LineSpan returns the inclusive 1-indexed (start, end) line range a node
// covers.
func (t *Tree) LineSpan(n *sitter.Node) (start, end int) {
	return int(n.StartPoint().Row) + 1, int(n.EndPoint().Row) + 1
}

// EnclosingTestAttr reports whether n sits inside a function or module
// carrying #[test] or #[cfg(test)], for test-context detection.
func (t *Tree) EnclosingTestAttr(n *sitter.Node) bool {
	for p := n; p != nil; p = p.Parent() {
		switch p.Type() {
		case "function_item", "mod_item":
			for _, a := range AttributeStack(p) {
				text := t.Text(a)
				if strings.Contains(text, "test") {
					return true
				}
			}
		}
	}
	return false
}
