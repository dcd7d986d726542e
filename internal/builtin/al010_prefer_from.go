package builtin

import (
	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// PreferFromOverInto is AL010: flags `impl Into<T> for U` blocks. From is
// preferred since it also gives U a blanket Into<T> via the standard
// library's reflexive impl, while a direct Into impl does not reciprocate.
type PreferFromOverInto struct{}

func (PreferFromOverInto) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL010",
		Name:            "prefer-from-over-into",
		Description:     "Implement From<T>, not Into<T>, for conversions.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al PreferFromOverInto) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, impl := range rustsyntax.FindAll(tree.Root, "impl_item") {
		trait := impl.ChildByFieldName("trait")
		if trait == nil {
			continue
		}
		base := lastSegment(genericBase(tree.Text(trait)))
		if base != "Into" {
			continue
		}
		out = append(out, r.at(impl, "impl Into<T> for U should be impl From<U> for T instead", &types.Suggestion{
			Message: "swap to `impl From<U> for T` and rely on the blanket Into impl",
		})...)
	}
	return withFile(fc, out)
}

// genericBase strips a trailing `<...>` generic argument list, returning
// just the trait's base name (e.g. "Into<Foo>" -> "Into").
func genericBase(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '<' {
			return s[:i]
		}
	}
	return s
}
