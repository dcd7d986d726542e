package layer

import (
	"strings"

	"github.com/oxhq/archlint/internal/types"
)

// ArchRuleEngine evaluates FileAnalysis results against an ArchConfig and
// LayerResolver, producing the same types.Finding shape the primary rule
// engine uses so reports stay uniform across languages.
type ArchRuleEngine struct {
	resolver *LayerResolver
	cfg      *ArchConfig
}

// NewArchRuleEngine builds an engine from an already-validated cfg.
func NewArchRuleEngine(cfg *ArchConfig) *ArchRuleEngine {
	return &ArchRuleEngine{resolver: NewLayerResolver(cfg.Layers), cfg: cfg}
}

// Check runs every configured check against fa and returns the findings,
// unsorted — the caller (the orchestrator) applies the final stable sort.
func (e *ArchRuleEngine) Check(fa FileAnalysis) []types.Finding {
	var out []types.Finding
	out = append(out, e.checkLayerDependency(fa)...)
	out = append(out, e.checkPatternConstraints(fa)...)
	out = append(out, e.checkNamingConstraints(fa)...)
	return out
}

func (e *ArchRuleEngine) checkLayerDependency(fa FileAnalysis) []types.Finding {
	from, ok := e.resolver.Resolve(fa.PackageName)
	if !ok {
		return nil
	}
	allowed := make(map[string]bool, len(e.cfg.Allowed[from]))
	for _, t := range e.cfg.Allowed[from] {
		allowed[t] = true
	}

	var out []types.Finding
	for _, imp := range fa.Imports {
		to, ok := e.resolver.Resolve(imp.Path)
		if !ok || to == from {
			continue
		}
		if allowed[to] {
			continue
		}
		out = append(out, types.Finding{
			Code:     "LAYER001",
			RuleName: "layer-dependency",
			Severity: types.SeverityError,
			Location: types.Location{File: fa.Path, Line: imp.Line},
			Message:  "layer '" + from + "' may not depend on layer '" + to + "' (import '" + imp.Path + "')",
		})
	}
	return out
}

func (e *ArchRuleEngine) checkPatternConstraints(fa FileAnalysis) []types.Finding {
	from, ok := e.resolver.Resolve(fa.PackageName)
	if !ok {
		return nil
	}
	var out []types.Finding
	for _, c := range e.cfg.Constraints {
		if c.Pattern == "" || !layerIn(from, c.InLayers) {
			continue
		}
		for _, imp := range fa.Imports {
			if !strings.Contains(imp.Path, c.Pattern) {
				continue
			}
			out = append(out, types.Finding{
				Code:     "PATTERN001",
				RuleName: "no-import-pattern",
				Severity: severityOrDefault(c.Severity, types.SeverityWarning),
				Location: types.Location{File: fa.Path, Line: imp.Line},
				Message:  "import '" + imp.Path + "' matches the forbidden pattern '" + c.Pattern + "'",
			})
		}
	}
	return out
}

func (e *ArchRuleEngine) checkNamingConstraints(fa FileAnalysis) []types.Finding {
	from, ok := e.resolver.Resolve(fa.PackageName)
	if !ok {
		return nil
	}
	var out []types.Finding
	for _, c := range e.cfg.Constraints {
		if c.ImportMatches == "" || !layerIn(from, c.InLayers) {
			continue
		}
		for _, imp := range fa.Imports {
			if !strings.Contains(imp.Path, c.ImportMatches) {
				continue
			}
			if c.SourceMustMatch != "" && !anyDeclContains(fa.Decls, c.SourceMustMatch) {
				out = append(out, types.Finding{
					Code:     "NAMING001",
					RuleName: "naming-rule",
					Severity: severityOrDefault(c.Severity, types.SeverityWarning),
					Location: types.Location{File: fa.Path, Line: imp.Line},
					Message:  "import '" + imp.Path + "' requires a declaration matching '" + c.SourceMustMatch + "' in this file",
				})
			}
			if c.SourceMustNotMatch != "" && anyDeclContains(fa.Decls, c.SourceMustNotMatch) {
				out = append(out, types.Finding{
					Code:     "NAMING001",
					RuleName: "naming-rule",
					Severity: severityOrDefault(c.Severity, types.SeverityWarning),
					Location: types.Location{File: fa.Path, Line: imp.Line},
					Message:  "import '" + imp.Path + "' forbids a declaration matching '" + c.SourceMustNotMatch + "' in this file",
				})
			}
		}
	}
	return out
}

func layerIn(layer string, layers []string) bool {
	for _, l := range layers {
		if l == layer {
			return true
		}
	}
	return false
}

func anyDeclContains(decls []DeclInfo, substr string) bool {
	for _, d := range decls {
		if strings.Contains(d.Name, substr) {
			return true
		}
	}
	return false
}

func severityOrDefault(configured string, def types.Severity) types.Severity {
	if configured == "" {
		return def
	}
	sev, err := types.ParseSeverity(configured)
	if err != nil {
		return def
	}
	return sev
}
