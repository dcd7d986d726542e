// Package config loads and validates the TOML-shaped configuration
// document: analyzer root/exclude/include, per-rule enable/severity
// overrides, and the declarative scope/layer sections, resolved through
// the project's usual config file discovery order.
package config

import "github.com/oxhq/archlint/internal/types"

// AnalyzerDoc is the `[analyzer]` table.
type AnalyzerDoc struct {
	Root             string   `toml:"root"`
	Exclude          []string `toml:"exclude"`
	Include          []string `toml:"include"`
	RespectGitignore *bool    `toml:"respect_gitignore"`
}

// RuleConfig is one `[rules.<name>]` table, decoded loosely so rule-specific
// free-form options pass straight through to the rule that owns them.
type RuleConfig map[string]any

// Enabled reports the configured enabled state, defaulting to true per
// the analyzer's rule-enabled predicate.
func (rc RuleConfig) Enabled() bool {
	if v, ok := rc["enabled"]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return true
}

// SeverityOverride reports the configured severity override, if any.
func (rc RuleConfig) SeverityOverride() (types.Severity, bool) {
	v, ok := rc["severity"]
	if !ok {
		return 0, false
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	sev, err := types.ParseSeverity(s)
	if err != nil {
		return 0, false
	}
	return sev, true
}

// ScopeDoc is one `[[scopes]]` entry.
type ScopeDoc struct {
	Name  string   `toml:"name"`
	Paths []string `toml:"paths"`
}

// RestrictUseDoc is one `[[restrict-use]]` entry.
type RestrictUseDoc struct {
	Name     string   `toml:"name"`
	Scope    string   `toml:"scope"`
	Files    []string `toml:"files"`
	Deny     []string `toml:"deny"`
	Message  string   `toml:"message"`
	DocRef   string   `toml:"doc"`
	Severity string   `toml:"severity"`
}

// RequireUseDoc is one `[[require-use]]` entry.
type RequireUseDoc struct {
	Name        string   `toml:"name"`
	Scope       string   `toml:"scope"`
	Files       []string `toml:"files"`
	Over        []string `toml:"over"`
	Alternative string   `toml:"alternative"`
	Message     string   `toml:"message"`
	DocRef      string   `toml:"doc"`
	Severity    string   `toml:"severity"`
}

// ScopeDepDoc is one `[[deny-scope-dep]]` entry.
type ScopeDepDoc struct {
	From     string   `toml:"from"`
	Deny     []string `toml:"deny"`
	Message  string   `toml:"message"`
	DocRef   string   `toml:"doc"`
	Severity string   `toml:"severity"`
}

// LayerDoc is one `[[layers]]` entry.
type LayerDoc struct {
	Name     string   `toml:"name"`
	Packages []string `toml:"packages"`
}

// ConstraintDoc is one `[[constraints]]` entry.
type ConstraintDoc struct {
	Name               string   `toml:"name"`
	InLayers           []string `toml:"in_layers"`
	Pattern            string   `toml:"pattern"`
	ImportMatches      string   `toml:"import_matches"`
	SourceMustMatch    string   `toml:"source_must_match"`
	SourceMustNotMatch string   `toml:"source_must_not_match"`
	Severity           string   `toml:"severity"`
}

// Document is the whole decoded configuration document.
type Document struct {
	Preset       string                    `toml:"preset"`
	FailOn       string                    `toml:"fail_on"`
	Analyzer     AnalyzerDoc               `toml:"analyzer"`
	Rules        map[string]RuleConfig     `toml:"rules"`
	Scopes       []ScopeDoc                `toml:"scopes"`
	RestrictUse  []RestrictUseDoc          `toml:"restrict-use"`
	RequireUse   []RequireUseDoc           `toml:"require-use"`
	DenyScopeDep []ScopeDepDoc             `toml:"deny-scope-dep"`
	Layers       []LayerDoc                `toml:"layers"`
	Dependencies map[string][]string       `toml:"dependencies"`
	Constraints  []ConstraintDoc           `toml:"constraints"`
}

// FailOnSeverity parses FailOn, defaulting to Error when unset or invalid —
// the strictest threshold, so a malformed fail_on never silently loosens
// the test-harness gate.
func (d Document) FailOnSeverity() types.Severity {
	if d.FailOn == "" {
		return types.SeverityError
	}
	sev, err := types.ParseSeverity(d.FailOn)
	if err != nil {
		return types.SeverityError
	}
	return sev
}

// RespectGitignore reports the configured value, defaulting to true.
func (d Document) RespectGitignore() bool {
	if d.Analyzer.RespectGitignore == nil {
		return true
	}
	return *d.Analyzer.RespectGitignore
}
