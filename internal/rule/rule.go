// Package rule defines the polymorphic rule abstraction:
// per-file rules and project rules are interface-typed opaque values keyed
// by a stable code, never inspected by callers beyond that interface.
package rule

import (
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// Identity is the metadata every rule, declarative or built-in, carries.
type Identity struct {
	Code            string
	Name            string
	Description     string
	DefaultSeverity types.Severity
	// RequiresReason reports whether a suppression of this rule must carry
	// reason="..." to avoid the missing-required-reason meta-finding.
	// This defaults to true whenever DefaultSeverity is Error.
	RequiresReason func() bool
}

// ReasonRequired is the default RequiresReason: true iff sev is Error.
func ReasonRequired(sev types.Severity) func() bool {
	return func() bool { return sev == types.SeverityError }
}

// PerFileRule checks one parsed file in isolation. The analyzer skips a
// file that fails to parse (or aborts in strict mode), so rules are not
// called for it; a rule handed a nil tree returns no findings.
type PerFileRule interface {
	Identity() Identity
	CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding
}

// ProjectRule checks the whole project at once; it receives only file
// paths, never parsed trees, to keep memory use bounded.
type ProjectRule interface {
	Identity() Identity
	CheckProject(pc types.ProjectContext) []types.Finding
}
