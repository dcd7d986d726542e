package builtin

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// TracingEnvInit is AL007: flags a string-literal argument passed to an
// env-filter constructor (e.g. `EnvFilter::new("info")`, `Env::new("info")`),
// since the filter level belongs in an environment variable, not a literal
// baked into the binary. The one exemption is the constructor call sitting
// inside the fallback closure of an env-based initializer
// (`try_from_default_env().unwrap_or_else(|_| EnvFilter::new("info"))`),
// where the literal is the documented default for when the env var is unset.
type TracingEnvInit struct{}

var envFilterCtors = map[string]bool{
	"new": true,
}

func (TracingEnvInit) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL007",
		Name:            "tracing-env-init",
		Description:     "Env-filter level strings belong in the environment, not hardcoded.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al TracingEnvInit) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, call := range rustsyntax.FindAll(tree.Root, "call_expression") {
		fn := call.ChildByFieldName("function")
		if fn == nil || fn.Type() != "scoped_identifier" {
			continue
		}
		path := tree.Text(fn)
		name := lastSegment(path)
		if !envFilterCtors[name] || !looksLikeEnvFilterType(path) {
			continue
		}
		args := call.ChildByFieldName("arguments")
		if args == nil {
			continue
		}
		lit := soleStringLiteralArg(args)
		if lit == nil {
			continue
		}
		if isInsideEnvFallbackClosure(tree, call) {
			continue
		}
		out = append(out, r.at(call, "filter level "+tree.Text(lit)+" is hardcoded; read it from the environment instead", &types.Suggestion{
			Message: "wrap this in try_from_default_env().unwrap_or_else(|_| " + path + "(" + tree.Text(lit) + "))",
		})...)
	}
	return withFile(fc, out)
}

func looksLikeEnvFilterType(path string) bool {
	return containsSubstr(path, "EnvFilter") || containsSubstr(path, "Env::")
}

func containsSubstr(s, sub string) bool {
	if len(sub) == 0 || len(s) < len(sub) {
		return len(sub) == 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func soleStringLiteralArg(args *sitter.Node) *sitter.Node {
	var lit *sitter.Node
	count := 0
	for i := 0; i < int(args.ChildCount()); i++ {
		c := args.Child(i)
		switch c.Type() {
		case "(", ")", ",":
			continue
		}
		count++
		if c.Type() == "string_literal" {
			lit = c
		}
	}
	if count == 1 {
		return lit
	}
	return nil
}

// isInsideEnvFallbackClosure reports whether call sits inside a closure
// that is the sole argument of an `.unwrap_or_else(...)` call chained off
// a `try_from_default_env()` call.
func isInsideEnvFallbackClosure(tree *rustsyntax.Tree, call *sitter.Node) bool {
	closure := enclosingClosure(call)
	if closure == nil {
		return false
	}
	args := closure.Parent()
	if args == nil || args.Type() != "arguments" {
		return false
	}
	outerCall := args.Parent()
	if outerCall == nil || outerCall.Type() != "call_expression" {
		return false
	}
	fn := outerCall.ChildByFieldName("function")
	if fn == nil || fn.Type() != "field_expression" {
		return false
	}
	if tree.MethodName(fn) != "unwrap_or_else" {
		return false
	}
	recv := fn.ChildByFieldName("value")
	if recv == nil || recv.Type() != "call_expression" {
		return false
	}
	recvFn := recv.ChildByFieldName("function")
	if recvFn == nil {
		return false
	}
	switch recvFn.Type() {
	case "field_expression":
		return tree.MethodName(recvFn) == "try_from_default_env"
	case "scoped_identifier":
		return lastSegment(tree.Text(recvFn)) == "try_from_default_env"
	}
	return false
}

func enclosingClosure(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "closure_expression" {
			return p
		}
		if p.Type() == "call_expression" || p.Type() == "function_item" {
			return nil
		}
	}
	return nil
}
