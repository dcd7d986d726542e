// Package builtin implements the fixed catalog of per-file rules AL001
// through AL013, each a rule.PerFileRule over a parsed Rust
// concrete syntax tree, honoring the suppression system at the
// point of reporting.
package builtin

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/suppress"
	"github.com/oxhq/archlint/internal/types"
)

// reporter bundles the plumbing every built-in rule repeats: splitting
// source into lines once per file, and gating each candidate violation
// through the suppression system before it becomes a Finding.
type reporter struct {
	id    rule.Identity
	tree  *rustsyntax.Tree
	lines []string
	// legacy lists the classic compiler-style `#[allow(name)]` lint names
	// this rule additionally honors, matching the legacy suppression form.
	legacy []string
}

func newReporter(id rule.Identity, tree *rustsyntax.Tree, legacy ...string) *reporter {
	return &reporter{
		id:     id,
		tree:   tree,
		lines:  strings.Split(string(tree.Source), "\n"),
		legacy: legacy,
	}
}

// at reports a candidate violation whose offending token is site, gating
// it through suppression. message and suggestion describe the violation;
// suggestion may be nil.
func (r *reporter) at(site *sitter.Node, message string, suggestion *types.Suggestion) []types.Finding {
	line, col := r.tree.Pos(site)
	loc := types.Location{File: "", Line: line, Column: col}

	res := suppress.Check(r.tree, r.lines, r.id.Name, r.legacy, site, line)
	reportOriginal, emitMeta := suppress.Gate(res, r.id.RequiresReason())
	if emitMeta {
		return []types.Finding{suppress.MissingReasonFinding(r.id.Code, r.id.Name, loc)}
	}
	if !reportOriginal {
		return nil
	}
	return []types.Finding{{
		Code:       r.id.Code,
		RuleName:   r.id.Name,
		Severity:   r.id.DefaultSeverity,
		Location:   loc,
		Message:    message,
		Suggestion: suggestion,
	}}
}

// atLine is like at but the location's line/column are given directly,
// for violations whose natural "site" for suppression purposes (an
// enclosing item) differs from the reported location (e.g. a line inside
// a match arm).
func (r *reporter) atLine(site *sitter.Node, line, col int, message string, suggestion *types.Suggestion) []types.Finding {
	loc := types.Location{File: "", Line: line, Column: col}
	res := suppress.Check(r.tree, r.lines, r.id.Name, r.legacy, site, line)
	reportOriginal, emitMeta := suppress.Gate(res, r.id.RequiresReason())
	if emitMeta {
		return []types.Finding{suppress.MissingReasonFinding(r.id.Code, r.id.Name, loc)}
	}
	if !reportOriginal {
		return nil
	}
	return []types.Finding{{
		Code:       r.id.Code,
		RuleName:   r.id.Name,
		Severity:   r.id.DefaultSeverity,
		Location:   loc,
		Message:    message,
		Suggestion: suggestion,
	}}
}

// withFile stamps the file path (unknown at rule-construction time) onto
// every finding a rule produced for fc.
func withFile(fc types.FileContext, findings []types.Finding) []types.Finding {
	for i := range findings {
		findings[i].Location.File = fc.RelPath
	}
	return findings
}
