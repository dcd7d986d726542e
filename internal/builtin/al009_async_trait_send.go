package builtin

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// AsyncTraitSendCheck is AL009: a trait carrying an async_trait attribute
// normally requires its futures to be Send, which async-trait enforces by
// default. On a single-threaded runtime that requirement is unnecessary
// overhead, so traits should opt out with `#[async_trait(?Send)]`. The rule
// only fires when the project is configured for a single-threaded runtime —
// on a multi-threaded runtime the default (Send-requiring) behavior is
// correct and flagging it would be backwards.
type AsyncTraitSendCheck struct {
	SingleThreadedRuntime bool
}

func (al AsyncTraitSendCheck) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL009",
		Name:            "async-trait-send-check",
		Description:     "Single-threaded runtimes should opt traits out of async-trait's Send requirement.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al AsyncTraitSendCheck) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || !al.SingleThreadedRuntime {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, trait := range rustsyntax.FindAll(tree.Root, "trait_item") {
		attrs := rustsyntax.AttributeStack(trait)
		asyncAttr := findAsyncTraitAttr(tree, attrs)
		if asyncAttr == nil || strings.Contains(tree.Text(asyncAttr), "?Send") {
			continue
		}
		name := tree.ItemName(trait)
		line := tree.EarliestLine(trait)
		_, col := tree.Pos(trait)
		out = append(out, r.atLine(trait, line, col, "trait '"+name+"' uses async_trait without the ?Send opt-out on a single-threaded runtime", &types.Suggestion{
			Message: "add #[async_trait(?Send)]",
		})...)
	}
	return withFile(fc, out)
}

func findAsyncTraitAttr(tree *rustsyntax.Tree, attrs []*sitter.Node) *sitter.Node {
	for _, a := range attrs {
		if strings.Contains(tree.Text(a), "async_trait") {
			return a
		}
	}
	return nil
}
