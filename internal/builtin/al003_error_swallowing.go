package builtin

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// NoErrorSwallowing is AL003: flags `if let Err(_) = ...` with no further
// propagation, and match arms on Err(...) whose body consists solely of
// logging-macro calls and/or a bare `return ()`.
type NoErrorSwallowing struct{}

var loggingMacros = map[string]bool{
	"error": true, "warn": true, "info": true, "debug": true, "trace": true,
}

func (NoErrorSwallowing) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL003",
		Name:            "no-error-swallowing",
		Description:     "Err branches that only log (or do nothing) swallow the error.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al NoErrorSwallowing) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || fc.IsTest {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, ifExpr := range rustsyntax.FindAll(tree.Root, "if_expression") {
		cond := ifExpr.ChildByFieldName("condition")
		if cond == nil || cond.Type() != "let_condition" {
			continue
		}
		pat := cond.ChildByFieldName("pattern")
		if !isErrPattern(tree, pat) || strings.ReplaceAll(tree.Text(pat), " ", "") != "Err(_)" {
			continue
		}
		out = append(out, r.at(ifExpr, "if let Err(_) branch discards the error without propagating it", &types.Suggestion{
			Message: "propagate with `?`, log AND return, or handle the error explicitly",
		})...)
	}

	for _, arm := range rustsyntax.FindAll(tree.Root, "match_arm") {
		pat := arm.ChildByFieldName("pattern")
		if !isErrPattern(tree, pat) {
			continue
		}
		body := arm.ChildByFieldName("value")
		if body == nil || !isSwallowingBody(tree, body) {
			continue
		}
		out = append(out, r.at(arm, "match arm on Err(...) only logs or no-ops, discarding the error", &types.Suggestion{
			Message: "propagate with `?`, log AND return, or handle the error explicitly",
		})...)
	}
	return withFile(fc, out)
}

// isErrPattern reports whether pat is a tuple-struct pattern `Err(...)`
// such as `Err(_)` or `Err(e)`; reference patterns and or-patterns are not
// recognized.
func isErrPattern(tree *rustsyntax.Tree, pat *sitter.Node) bool {
	if pat == nil {
		return false
	}
	if pat.Type() != "tuple_struct_pattern" {
		return false
	}
	typeNode := pat.ChildByFieldName("type")
	if typeNode == nil {
		typeNode = pat.Child(0)
	}
	return typeNode != nil && tree.Text(typeNode) == "Err"
}

// isSwallowingBody reports whether body consists solely of logging-macro
// invocations and/or a bare `return ()` / `return`.
func isSwallowingBody(tree *rustsyntax.Tree, body *sitter.Node) bool {
	stmts := blockStatements(body)
	if len(stmts) == 0 {
		return false
	}
	for _, s := range stmts {
		if isLoggingCallStatement(tree, s) {
			continue
		}
		if isBareReturn(s) {
			continue
		}
		return false
	}
	return true
}

// blockStatements returns the statement-like children of a block
// (stripping the body down if it's wrapped in a "block" node) or, for a
// single-expression arm body, the expression itself.
func blockStatements(n *sitter.Node) []*sitter.Node {
	if n.Type() != "block" {
		return []*sitter.Node{n}
	}
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "{", "}":
			continue
		default:
			out = append(out, c)
		}
	}
	return out
}

func isLoggingCallStatement(tree *rustsyntax.Tree, n *sitter.Node) bool {
	inner := n
	if inner.Type() == "expression_statement" && inner.ChildCount() > 0 {
		inner = inner.Child(0)
	}
	if inner.Type() != "macro_invocation" {
		return false
	}
	macro := inner.ChildByFieldName("macro")
	if macro == nil {
		return false
	}
	name := lastSegment(tree.Text(macro))
	return loggingMacros[name]
}

func isBareReturn(n *sitter.Node) bool {
	inner := n
	if inner.Type() == "expression_statement" && inner.ChildCount() > 0 {
		inner = inner.Child(0)
	}
	if inner.Type() != "return_expression" {
		return false
	}
	for i := 0; i < int(inner.ChildCount()); i++ {
		c := inner.Child(i)
		if c.Type() == "unit_expression" || c.Type() == "(" || c.Type() == ")" || c.Type() == "return" {
			continue
		}
		return false
	}
	return true
}
