package builtin

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// NoUnwrapExpect is AL001: flags `.unwrap()` and `.expect()` calls.
// `.partial_cmp(...).unwrap()` is flagged with an additional NaN note,
// since partial_cmp returns None precisely on NaN comparisons.
type NoUnwrapExpect struct{}

func (NoUnwrapExpect) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL001",
		Name:            "no-unwrap-expect",
		Description:     "Method calls .unwrap() and .expect() are forbidden outside tests.",
		DefaultSeverity: types.SeverityError,
		RequiresReason:  rule.ReasonRequired(types.SeverityError),
	}
}

func (al NoUnwrapExpect) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree, "clippy::unwrap_used", "clippy::expect_used")

	var out []types.Finding
	for _, call := range tree.CallsByMethod("unwrap", "expect") {
		if tree.EnclosingTestAttr(call.Node) || fc.IsTest {
			continue
		}
		msg := "calling ." + call.Method + "() can panic; handle the Result/Option explicitly"
		if call.Method == "unwrap" && isPartialCmpReceiver(tree, call.Receiver) {
			msg = "partial_cmp(...).unwrap() panics on NaN; handle the None case explicitly"
		}
		out = append(out, r.at(call.Node, msg, &types.Suggestion{
			Message: "replace with `?`, a match, or .unwrap_or_else(...) with explicit error handling",
		})...)
	}
	return withFile(fc, out)
}

// isPartialCmpReceiver reports whether receiver is itself a call to
// `.partial_cmp(...)`.
func isPartialCmpReceiver(tree *rustsyntax.Tree, receiver *sitter.Node) bool {
	if receiver == nil || receiver.Type() != "call_expression" {
		return false
	}
	fn := receiver.ChildByFieldName("function")
	if fn == nil || fn.Type() != "field_expression" {
		return false
	}
	return tree.MethodName(fn) == "partial_cmp"
}
