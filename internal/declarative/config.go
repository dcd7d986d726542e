// Package declarative implements the three configuration-driven rule kinds:
// RestrictUse, RequireUse and ScopeDep, plus the scope/pattern
// vocabulary they're built from. Rules are only instantiated from a
// validated DeclarativeConfig — raw DTOs never reach a rule constructor
// directly.
package declarative

import (
	"fmt"
	"strings"

	"github.com/oxhq/archlint/internal/types"
)

// ScopeName is a validated, non-empty scope identifier.
type ScopeName string

// GlobPattern is a validated doublestar-style glob used to match a file's
// relative path against a scope.
type GlobPattern string

// UsePattern is a "::"-segmented import-path pattern where "*" matches
// exactly one segment and "**" matches zero or more segments. Matching is
// a recursive segment predicate, not a translation to regex.
type UsePattern string

// Matches reports whether path (a "::"-segmented import path, as produced
// by rustsyntax.Import.Path) matches this pattern.
func (p UsePattern) Matches(path string) bool {
	return matchSegments(strings.Split(string(p), "::"), strings.Split(path, "::"))
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	head := pattern[0]
	if head == "**" {
		if matchSegments(pattern[1:], path) {
			return true
		}
		if len(path) == 0 {
			return false
		}
		return matchSegments(pattern, path[1:])
	}
	if len(path) == 0 {
		return false
	}
	if head != "*" && head != path[0] {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}

// Scope associates a name with the glob patterns that select which files
// belong to it.
type Scope struct {
	Name  ScopeName
	Globs []GlobPattern
}

// Matches reports whether relPath (slash-separated, project-relative)
// belongs to this scope.
func (s Scope) Matches(relPath string) bool {
	for _, g := range s.Globs {
		if globMatch(string(g), relPath) {
			return true
		}
	}
	return false
}

// ScopeRef is either a reference to a pre-declared named scope or an
// inline list of glob patterns supplied directly by the rule — the two
// mutually exclusive `scope = "name"` / `files = [...]` config forms.
type ScopeRef struct {
	Name   ScopeName
	Inline []GlobPattern
}

// Resolve returns the Scope this reference points to: the pre-declared
// scope looked up by Name, or a synthetic, unnamed scope built from the
// inline globs.
func (r ScopeRef) Resolve(scopes map[ScopeName]Scope) Scope {
	if r.Name != "" {
		return scopes[r.Name]
	}
	return Scope{Globs: r.Inline}
}

// RestrictUseDTO is the raw, unvalidated configuration shape for a single
// `[[restrict-use]]` table.
type RestrictUseDTO struct {
	Name     string
	Scope    string
	Files    []string
	Deny     []string
	Message  string
	DocRef   string
	Severity string
}

// RestrictUse is ALD001: files matching Scope may not import anything
// matching Deny.
type RestrictUse struct {
	Name     string
	Scope    ScopeRef
	Deny     []UsePattern
	Message  string
	DocRef   string
	Severity types.Severity
}

// RequireUseDTO is the raw configuration shape for `[[require-use]]`.
type RequireUseDTO struct {
	Name        string
	Scope       string
	Files       []string
	Over        []string
	Alternative string
	Message     string
	DocRef      string
	Severity    string
}

// RequireUse is ALD002: files matching Scope may not import a crate named
// in Over; Alternative names the preferred crate in the finding message.
type RequireUse struct {
	Name        string
	Scope       ScopeRef
	Over        []string
	Alternative string
	Message     string
	DocRef      string
	Severity    types.Severity
}

// ScopeDepDTO is the raw configuration shape for `[[deny-scope-dep]]`.
type ScopeDepDTO struct {
	From     string
	Deny     []string
	Message  string
	DocRef   string
	Severity string
}

// ScopeDep is ALD003: files belonging to scope From may not import a path
// that resolves (by source-file location) into any of the scopes in Deny.
// Unlike RestrictUse/RequireUse, its endpoints are bare scope names, not
// ScopeRefs — a scope dependency is inherently between two named scopes.
type ScopeDep struct {
	From     ScopeName
	Deny     []ScopeName
	Message  string
	DocRef   string
	Severity types.Severity
}

// DeclarativeConfig is the fully validated, cross-referenced aggregate.
// Construct it only through NewDeclarativeConfig.
type DeclarativeConfig struct {
	Scopes       map[ScopeName]Scope
	RestrictUses []RestrictUse
	RequireUses  []RequireUse
	ScopeDeps    []ScopeDep
}

// ScopeDTO is the raw configuration shape for `[[scopes]]`.
type ScopeDTO struct {
	Name  string
	Globs []string
}

// RawConfig is the full set of DTOs decoded straight from a config
// document, before cross-reference validation.
type RawConfig struct {
	Scopes       []ScopeDTO
	RestrictUses []RestrictUseDTO
	RequireUses  []RequireUseDTO
	ScopeDeps    []ScopeDepDTO
}

// NewDeclarativeConfig validates raw and returns the aggregate, or every
// cross-reference error found (scope ref not found, scope-dep endpoint not
// found, ambiguous scope reference, unknown severity) collected at once
// rather than failing on the first.
func NewDeclarativeConfig(raw RawConfig) (*DeclarativeConfig, []error) {
	var errs []error
	scopes := make(map[ScopeName]Scope, len(raw.Scopes))
	for _, s := range raw.Scopes {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("scope with empty name"))
			continue
		}
		name := ScopeName(s.Name)
		if _, exists := scopes[name]; exists {
			errs = append(errs, fmt.Errorf("duplicate scope %q", s.Name))
			continue
		}
		globs := make([]GlobPattern, 0, len(s.Globs))
		for _, g := range s.Globs {
			globs = append(globs, GlobPattern(g))
		}
		scopes[name] = Scope{Name: name, Globs: globs}
	}

	// resolveScopeRef validates the `scope`/`files` pair: exactly one of
	// the two must be set, and a named scope must resolve.
	resolveScopeRef := func(kind, ruleName, scope string, files []string) ScopeRef {
		switch {
		case scope != "" && len(files) == 0:
			if _, ok := scopes[ScopeName(scope)]; !ok {
				errs = append(errs, fmt.Errorf("%s %q references unknown scope %q", kind, ruleName, scope))
			}
			return ScopeRef{Name: ScopeName(scope)}
		case scope == "" && len(files) > 0:
			globs := make([]GlobPattern, 0, len(files))
			for _, f := range files {
				globs = append(globs, GlobPattern(f))
			}
			return ScopeRef{Inline: globs}
		default:
			errs = append(errs, fmt.Errorf("%s %q: exactly one of scope or files must be set", kind, ruleName))
			return ScopeRef{}
		}
	}

	resolveScopeName := func(kind, ref string) ScopeName {
		if _, ok := scopes[ScopeName(ref)]; !ok {
			errs = append(errs, fmt.Errorf("%s references unknown scope %q", kind, ref))
		}
		return ScopeName(ref)
	}

	parseSeverity := func(kind, ruleName, raw string, def types.Severity) types.Severity {
		if raw == "" {
			return def
		}
		sev, err := types.ParseSeverity(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", kind, ruleName, err))
			return def
		}
		return sev
	}

	var restricts []RestrictUse
	for _, r := range raw.RestrictUses {
		scopeRef := resolveScopeRef("restrict-use", r.Name, r.Scope, r.Files)
		deny := make([]UsePattern, 0, len(r.Deny))
		for _, d := range r.Deny {
			deny = append(deny, UsePattern(d))
		}
		restricts = append(restricts, RestrictUse{
			Name:     r.Name,
			Scope:    scopeRef,
			Deny:     deny,
			Message:  r.Message,
			DocRef:   r.DocRef,
			Severity: parseSeverity("restrict-use", r.Name, r.Severity, types.SeverityError),
		})
	}

	var requires []RequireUse
	for _, r := range raw.RequireUses {
		scopeRef := resolveScopeRef("require-use", r.Name, r.Scope, r.Files)
		requires = append(requires, RequireUse{
			Name:        r.Name,
			Scope:       scopeRef,
			Over:        append([]string{}, r.Over...),
			Alternative: r.Alternative,
			Message:     r.Message,
			DocRef:      r.DocRef,
			Severity:    parseSeverity("require-use", r.Name, r.Severity, types.SeverityWarning),
		})
	}

	var scopeDeps []ScopeDep
	for _, d := range raw.ScopeDeps {
		from := resolveScopeName("deny-scope-dep", d.From)
		deny := make([]ScopeName, 0, len(d.Deny))
		for _, target := range d.Deny {
			deny = append(deny, resolveScopeName("deny-scope-dep", target))
		}
		scopeDeps = append(scopeDeps, ScopeDep{
			From:     from,
			Deny:     deny,
			Message:  d.Message,
			DocRef:   d.DocRef,
			Severity: parseSeverity("deny-scope-dep", d.From, d.Severity, types.SeverityError),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &DeclarativeConfig{
		Scopes:       scopes,
		RestrictUses: restricts,
		RequireUses:  requires,
		ScopeDeps:    scopeDeps,
	}, nil
}

// Rules instantiates one rule per configured entry; an empty declarative
// section produces zero rules.
func (c *DeclarativeConfig) Rules() []DeclarativeRule {
	var out []DeclarativeRule
	for i, r := range c.RestrictUses {
		out = append(out, &RestrictUseRule{index: i, cfg: r, scope: r.Scope.Resolve(c.Scopes)})
	}
	for i, r := range c.RequireUses {
		out = append(out, &RequireUseRule{index: i, cfg: r, scope: r.Scope.Resolve(c.Scopes)})
	}
	for i, r := range c.ScopeDeps {
		out = append(out, &ScopeDepRule{index: i, cfg: r, scopes: c.Scopes})
	}
	return out
}
