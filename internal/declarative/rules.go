package declarative

import (
	"strings"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// DeclarativeRule is rule.PerFileRule with nothing added — the alias exists
// purely so callers reading this package know which rules came from
// configuration, not the fixed built-in catalog. Declarative rules are not
// registered into a rule.Catalog (which assumes one instance per stable
// code); the analyzer collects them straight from DeclarativeConfig.Rules().
type DeclarativeRule interface {
	rule.PerFileRule
}

// RestrictUseRule is ALD001.
type RestrictUseRule struct {
	index int
	cfg   RestrictUse
	scope Scope
}

func (r *RestrictUseRule) Identity() rule.Identity {
	return rule.Identity{
		Code:            "ALD001",
		Name:            "restrict-use",
		Description:     "Deny imports matching a configured pattern within a scope.",
		DefaultSeverity: r.cfg.Severity,
		RequiresReason:  rule.ReasonRequired(r.cfg.Severity),
	}
}

func (r *RestrictUseRule) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || !r.scope.Matches(fc.RelPath) {
		return nil
	}
	var out []types.Finding
	for _, imp := range tree.Imports() {
		for _, deny := range r.cfg.Deny {
			if !deny.Matches(imp.Path) {
				continue
			}
			out = append(out, types.Finding{
				Code:     "ALD001",
				RuleName: r.cfg.Name,
				Severity: r.cfg.Severity,
				Location: types.Location{File: fc.RelPath, Line: imp.Line, Column: imp.Column},
				Message:  r.cfg.Message + ": `" + imp.Path + "`",
				DocRef:   r.cfg.DocRef,
			})
			break
		}
	}
	return out
}

// RequireUseRule is ALD002.
type RequireUseRule struct {
	index int
	cfg   RequireUse
	scope Scope
}

func (r *RequireUseRule) Identity() rule.Identity {
	return rule.Identity{
		Code:            "ALD002",
		Name:            "require-use",
		Description:     "Require a preferred crate over a discouraged one within a scope.",
		DefaultSeverity: r.cfg.Severity,
		RequiresReason:  rule.ReasonRequired(r.cfg.Severity),
	}
}

func (r *RequireUseRule) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || !r.scope.Matches(fc.RelPath) {
		return nil
	}
	over := make(map[string]bool, len(r.cfg.Over))
	for _, c := range r.cfg.Over {
		over[c] = true
	}
	var out []types.Finding
	for _, imp := range tree.Imports() {
		crate := firstSegment(imp.Path)
		if !over[crate] {
			continue
		}
		msg := r.cfg.Message + ": use `" + r.cfg.Alternative + "` instead of `" + crate + "`"
		out = append(out, types.Finding{
			Code:     "ALD002",
			RuleName: r.cfg.Name,
			Severity: r.cfg.Severity,
			Location: types.Location{File: fc.RelPath, Line: imp.Line, Column: imp.Column},
			Message:  msg,
			DocRef:   r.cfg.DocRef,
		})
	}
	return out
}

func firstSegment(path string) string {
	if i := strings.Index(path, "::"); i >= 0 {
		return path[:i]
	}
	return path
}

// ScopeDepRule is ALD003.
type ScopeDepRule struct {
	index  int
	cfg    ScopeDep
	scopes map[ScopeName]Scope
}

func (r *ScopeDepRule) Identity() rule.Identity {
	return rule.Identity{
		Code:            "ALD003",
		Name:            "deny-scope-dep",
		Description:     "Deny a scope importing from another scope's source files.",
		DefaultSeverity: r.cfg.Severity,
		RequiresReason:  rule.ReasonRequired(r.cfg.Severity),
	}
}

func (r *ScopeDepRule) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	fromScope, ok := r.scopes[r.cfg.From]
	if !ok || tree == nil || !fromScope.Matches(fc.RelPath) {
		return nil
	}
	deny := make(map[ScopeName]bool, len(r.cfg.Deny))
	for _, d := range r.cfg.Deny {
		deny[d] = true
	}

	var out []types.Finding
	for _, imp := range tree.Imports() {
		tail, ok := stripRootMarker(imp.Path)
		if !ok {
			continue
		}
		candidate := "src/" + strings.Join(strings.Split(tail, "::"), "/") + ".rs"
		for name, scope := range r.scopes {
			if !deny[name] || !scope.Matches(candidate) {
				continue
			}
			out = append(out, types.Finding{
				Code:     "ALD003",
				RuleName: "deny-scope-dep",
				Severity: r.cfg.Severity,
				Location: types.Location{File: fc.RelPath, Line: imp.Line, Column: imp.Column},
				Message:  r.cfg.Message + ": `" + imp.Path + "` (scope `" + string(r.cfg.From) + "` -> scope `" + string(name) + "`)",
				DocRef:   r.cfg.DocRef,
			})
			break
		}
	}
	return out
}

// stripRootMarker reports whether path begins with the module root marker
// ("crate::") and, if so, returns the remaining tail.
func stripRootMarker(path string) (tail string, ok bool) {
	prefix := types.ModuleRoot + "::"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return strings.TrimPrefix(path, prefix), true
}
