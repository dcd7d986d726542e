package builtin

import (
	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// NoPanicInLib is AL011: flags the panic family of macros outside test
// contexts. Unlike AL001, these calls can't be retried or propagated with
// `?` — they are an unconditional abort, so the default severity is Error.
type NoPanicInLib struct{}

var panicMacros = map[string]bool{
	"panic": true, "todo": true, "unimplemented": true, "unreachable": true,
}

func (NoPanicInLib) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL011",
		Name:            "no-panic-in-lib",
		Description:     "Panic-family macros are forbidden outside tests.",
		DefaultSeverity: types.SeverityError,
		RequiresReason:  rule.ReasonRequired(types.SeverityError),
	}
}

func (al NoPanicInLib) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || fc.IsTest {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, inv := range tree.MacroInvocations() {
		if !panicMacros[inv.Name] {
			continue
		}
		if tree.EnclosingTestAttr(inv.Node) {
			continue
		}
		out = append(out, r.at(inv.Node, "'"+inv.Name+"!' aborts the process; return a Result instead", &types.Suggestion{
			Message: "propagate an error via Result instead of " + inv.Name + "!",
		})...)
	}
	return withFile(fc, out)
}
