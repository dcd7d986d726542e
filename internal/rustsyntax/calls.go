package rustsyntax

import sitter "github.com/smacker/go-tree-sitter"

// MethodCall is a `receiver.method(...)` call site.
type MethodCall struct {
	Node     *sitter.Node // the enclosing call_expression
	Method   string
	Receiver *sitter.Node // the field_expression's "value" child
}

// MethodName returns the method name from a field_expression-based call,
// reading directly from source since field.Content needs source bytes; use
// this instead of MethodCall.Method when a *Tree is in scope.
func (t *Tree) MethodName(fn *sitter.Node) string {
	field := fn.ChildByFieldName("field")
	if field == nil {
		return ""
	}
	return t.Text(field)
}

// CallsByMethod returns every call_expression of the form `<expr>.<method>(...)`
// for one of the given method names, with Method populated from source.
func (t *Tree) CallsByMethod(methods ...string) []MethodCall {
	want := make(map[string]bool, len(methods))
	for _, m := range methods {
		want[m] = true
	}
	var out []MethodCall
	for _, call := range FindAll(t.Root, "call_expression") {
		fn := call.ChildByFieldName("function")
		if fn == nil || fn.Type() != "field_expression" {
			continue
		}
		name := t.MethodName(fn)
		if !want[name] {
			continue
		}
		out = append(out, MethodCall{
			Node:     call,
			Method:   name,
			Receiver: fn.ChildByFieldName("value"),
		})
	}
	return out
}

// MacroInvocation is a `name!(...)` or `path::name!(...)` call site.
type MacroInvocation struct {
	Node *sitter.Node
	Name string // last segment only
	Path string // full dotted path as written, e.g. "tracing::info"
}

// MacroInvocations returns every macro_invocation in the tree.
func (t *Tree) MacroInvocations() []MacroInvocation {
	var out []MacroInvocation
	for _, n := range FindAll(t.Root, "macro_invocation") {
		macro := n.ChildByFieldName("macro")
		if macro == nil {
			continue
		}
		path := t.Text(macro)
		name := path
		if idx := lastSep(path); idx >= 0 {
			name = path[idx+2:]
		}
		out = append(out, MacroInvocation{Node: n, Name: name, Path: path})
	}
	return out
}

func lastSep(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == ':' && s[i+1] == ':' {
			return i
		}
	}
	return -1
}
