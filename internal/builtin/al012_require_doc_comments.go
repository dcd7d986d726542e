package builtin

import (
	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// RequireDocComments is AL012: public functions, structs and enums should
// carry a doc comment or #[doc] attribute, since they form the crate's
// external API surface.
type RequireDocComments struct{}

func (RequireDocComments) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL012",
		Name:            "require-doc-comments",
		Description:     "Public items should carry a doc comment.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al RequireDocComments) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || fc.IsTest {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, kind := range []string{"function_item", "struct_item", "enum_item"} {
		for _, item := range rustsyntax.FindAll(tree.Root, kind) {
			if !tree.IsPublic(item) {
				continue
			}
			if tree.HasDocAttribute(item) {
				continue
			}
			name := tree.ItemName(item)
			line := tree.EarliestLine(item)
			_, col := tree.Pos(item)
			out = append(out, r.atLine(item, line, col, "public item '"+name+"' has no doc comment", &types.Suggestion{
				Message: "add a /// doc comment describing this item",
			})...)
		}
	}
	return withFile(fc, out)
}
