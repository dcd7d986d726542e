package builtin

import (
	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// NoSilentResultDrop is AL013: flags the family of methods that silently
// discard a Result/Option's error or None case, and `let _ = <expr>;`
// statements that throw the whole value away. AL013 cannot distinguish
// Result from Option at the syntax level, so it flags the method name
// regardless of receiver type; false positives are preferred over a
// silently dropped error.
type NoSilentResultDrop struct {
	// SkipOk, when true, does not flag `.ok()` calls (a common, often
	// deliberate, idiom for converting a Result into an Option).
	SkipOk bool
	// SkipLetUnderscore, when true, does not flag `let _ = expr;`.
	SkipLetUnderscore bool
}

var silentDropMethods = map[string]bool{
	"unwrap_or": true, "unwrap_or_default": true, "unwrap_or_else": true, "ok": true,
}

func (NoSilentResultDrop) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL013",
		Name:            "no-silent-result-drop",
		Description:     "Don't discard a Result/Option's error case without comment.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al NoSilentResultDrop) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || fc.IsTest {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, call := range tree.CallsByMethod("unwrap_or", "unwrap_or_default", "unwrap_or_else", "ok") {
		if call.Method == "ok" && al.SkipOk {
			continue
		}
		out = append(out, r.at(call.Node, "."+call.Method+"() discards the error/None case silently", &types.Suggestion{
			Message: "match on the Result/Option explicitly, or log before discarding",
		})...)
	}

	if !al.SkipLetUnderscore {
		for _, let := range rustsyntax.FindAll(tree.Root, "let_declaration") {
			pat := let.ChildByFieldName("pattern")
			if pat == nil || tree.Text(pat) != "_" {
				continue
			}
			value := let.ChildByFieldName("value")
			if value == nil {
				continue
			}
			out = append(out, r.at(let, "let _ = ...; discards its value silently", &types.Suggestion{
				Message: "bind to a named variable, or handle the Result/Option explicitly",
			})...)
		}
	}
	return withFile(fc, out)
}
