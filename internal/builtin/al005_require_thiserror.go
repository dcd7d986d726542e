package builtin

import (
	"strings"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// RequireThiserror is AL005: a struct or enum named *Error should derive
// an error-implementing trait (thiserror::Error or a hand-derived Error
// token). The allow-comment is honored from the earliest attribute line,
// since the suppression comment conventionally sits above the whole
// attribute stack rather than immediately above the item keyword.
type RequireThiserror struct{}

func (RequireThiserror) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL005",
		Name:            "require-thiserror",
		Description:     "Types named *Error should derive an error trait.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al RequireThiserror) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, kind := range []string{"struct_item", "enum_item"} {
		for _, item := range rustsyntax.FindAll(tree.Root, kind) {
			name := tree.ItemName(item)
			if !strings.HasSuffix(name, "Error") {
				continue
			}
			attrs := rustsyntax.AttributeStack(item)
			if tree.HasDeriveContaining(attrs, "Error") {
				continue
			}
			line := tree.EarliestLine(item)
			_, col := tree.Pos(item)
			out = append(out, r.atLine(item, line, col, "type '"+name+"' is named like an error but doesn't derive an error trait", &types.Suggestion{
				Message: "add #[derive(thiserror::Error)] (or Error) and a #[error(\"...\")] message",
			})...)
		}
	}
	return withFile(fc, out)
}
