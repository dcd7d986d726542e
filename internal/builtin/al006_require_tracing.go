package builtin

import (
	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// RequiredCrate is a generic rule builder: flag macro invocations whose
// leading path segment names a discouraged crate, suggesting a preferred
// replacement. AL006 (require-tracing) is its sole built-in instance, but
// the shape is reusable for any "use crate X, not crate Y" policy.
type RequiredCrate struct {
	Code            string
	Name            string
	Description     string
	Severity        types.Severity
	DiscouragedCrate string
	PreferredCrate   string
}

// NewRequireTracing returns AL006 configured with its defaults: macro
// invocations rooted at the `log` crate should use `tracing` instead.
func NewRequireTracing() RequiredCrate {
	return RequiredCrate{
		Code:             "AL006",
		Name:             "require-tracing",
		Description:      "Use the tracing crate's macros, not log's.",
		Severity:         types.SeverityWarning,
		DiscouragedCrate: "log",
		PreferredCrate:   "tracing",
	}
}

func (al RequiredCrate) Identity() rule.Identity {
	return rule.Identity{
		Code:            al.Code,
		Name:            al.Name,
		Description:     al.Description,
		DefaultSeverity: al.Severity,
		RequiresReason:  rule.ReasonRequired(al.Severity),
	}
}

func (al RequiredCrate) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, inv := range tree.MacroInvocations() {
		if inv.Path == "" || lastSegmentHead(inv.Path) != al.DiscouragedCrate {
			continue
		}
		out = append(out, r.at(inv.Node, "macro invocation uses the '"+al.DiscouragedCrate+"' crate; prefer '"+al.PreferredCrate+"'", &types.Suggestion{
			Message: "replace the " + al.DiscouragedCrate + "::" + inv.Name + "! call with " + al.PreferredCrate + "::" + inv.Name + "!",
		})...)
	}
	return withFile(fc, out)
}

// lastSegmentHead returns the leading segment of a `::`-separated path.
func lastSegmentHead(path string) string {
	for i := 0; i < len(path)-1; i++ {
		if path[i] == ':' && path[i+1] == ':' {
			return path[:i]
		}
	}
	return path
}
