// Package suppress implements the three independent allow mechanisms:
// inline allow comments, arch_lint::allow attributes, and legacy
// compiler-style allow attributes — plus the mandatory-reason policy and
// hierarchical (enclosing-item) propagation.
//
// Parsing the small attribute-argument grammar (`allow(rule, rule2,
// reason = "...")`) with regexp is deliberate: it is a narrow, line-local
// grammar, not a general parser concern, so stdlib regexp is the right
// grain of tool rather than pulling in a full parser library.
package suppress

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlint/internal/rustsyntax"
)

// Result is the outcome of checking whether a rule is suppressed at a site.
type Result struct {
	Suppressed bool
	HasReason  bool
}

var (
	// `// arch-lint: allow(rule[, rule...]) [reason="text"]` — prefix may
	// also be `///`.
	commentDirective = regexp.MustCompile(`/{2,3}\s*arch-lint:\s*allow\(([^)]*)\)\s*(.*)$`)
	// `arch_lint::allow(...)` or `arch_lint_macros::allow(...)` attribute body.
	attrAllowPath = regexp.MustCompile(`^(arch_lint|arch_lint_macros)::allow\s*\(([^)]*)\)$`)
	reasonArg     = regexp.MustCompile(`reason\s*=\s*"([^"]*)"`)
)

// Check determines whether ruleName is suppressed at reportLine (1-indexed)
// within tree/lines, for a finding whose offending site is site (used to
// walk enclosing attributes). legacyNames are rule-specific classic
// `#[allow(name)]` lint names this rule additionally honors (e.g. an
// unwrap rule might honor `clippy::unwrap_used`); pass nil if none apply.
func Check(tree *rustsyntax.Tree, lines []string, ruleName string, legacyNames []string, site *sitter.Node, reportLine int) Result {
	if r, ok := checkComment(lines, ruleName, reportLine); ok {
		return r
	}
	if r, ok := checkAttributes(tree, ruleName, legacyNames, site); ok {
		return r
	}
	return Result{}
}

// checkComment scans lines {L-1, L} for an inline allow directive.
func checkComment(lines []string, ruleName string, reportLine int) (Result, bool) {
	for _, ln := range []int{reportLine - 1, reportLine} {
		if ln < 1 || ln > len(lines) {
			continue
		}
		m := commentDirective.FindStringSubmatch(lines[ln-1])
		if m == nil {
			continue
		}
		if !namesMatch(m[1], ruleName) {
			continue
		}
		reason := reasonArg.FindStringSubmatch(m[2])
		return Result{Suppressed: true, HasReason: len(reason) > 0 && reason[1] != ""}, true
	}
	return Result{}, false
}

// checkAttributes walks enclosing function/impl/mod items (innermost
// first) looking for an arch_lint::allow / arch_lint_macros::allow
// attribute, or a legacy #[allow(name)] for one of legacyNames. As a policy,
// inner items inherit outer allowances, so an outer hit still counts.
func checkAttributes(tree *rustsyntax.Tree, ruleName string, legacyNames []string, site *sitter.Node) (Result, bool) {
	if site == nil {
		return Result{}, false
	}
	scopes := []string{"function_item", "impl_item", "mod_item", "struct_item", "enum_item"}
	for n := site; n != nil; n = n.Parent() {
		isScope := false
		for _, s := range scopes {
			if n.Type() == s {
				isScope = true
				break
			}
		}
		if !isScope && n != site {
			continue
		}
		for _, attr := range rustsyntax.AttributeStack(n) {
			text := strings.TrimSpace(stripAttrBrackets(tree.Text(attr)))
			if m := attrAllowPath.FindStringSubmatch(text); m != nil {
				if res, ok := parseAllowArgs(m[2], ruleName, nil); ok {
					return res, true
				}
			}
			if legacy := parseLegacyAllow(text); legacy != "" {
				for _, ln := range legacyNames {
					if legacy == ln {
						return Result{Suppressed: true, HasReason: true}, true
					}
				}
			}
		}
	}
	return Result{}, false
}

// stripAttrBrackets turns "#[arch_lint::allow(foo)]" into "arch_lint::allow(foo)".
func stripAttrBrackets(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "#!")
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	return strings.TrimSpace(text)
}

// parseLegacyAllow extracts the single lint name from a classic
// `allow(name)` attribute, or "" if the text isn't one.
func parseLegacyAllow(text string) string {
	const prefix = "allow("
	if !strings.HasPrefix(text, prefix) || !strings.HasSuffix(text, ")") {
		return ""
	}
	return strings.TrimSpace(text[len(prefix) : len(text)-1])
}

// parseAllowArgs parses "rule1, rule2, reason = \"text\"" into a Result,
// matching if ruleName (or "all") is present.
func parseAllowArgs(args, ruleName string, _ []string) (Result, bool) {
	if !namesMatch(args, ruleName) {
		return Result{}, false
	}
	reason := reasonArg.FindStringSubmatch(args)
	return Result{Suppressed: true, HasReason: len(reason) > 0 && reason[1] != ""}, true
}

// namesMatch reports whether the comma-separated rule-name list contains
// ruleName or the special name "all", normalizing kebab-case and
// snake_case so both spellings match.
func namesMatch(list, ruleName string) bool {
	target := normalize(ruleName)
	for _, raw := range strings.Split(list, ",") {
		name := strings.TrimSpace(raw)
		if i := strings.Index(name, "="); i >= 0 {
			// a trailing reason="..." fragment leaked into the name list
			continue
		}
		if name == "" {
			continue
		}
		if normalize(name) == "all" || normalize(name) == target {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
}
