// Package analyzer orchestrates a full run: resolve the root and file set,
// parse and check each file, run project rules, then sort and return the
// aggregate Result. Parsed trees are dropped at the end of each file's
// pass, so memory use stays bounded regardless of project size.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/oxhq/archlint/internal/config"
	"github.com/oxhq/archlint/internal/discover"
	"github.com/oxhq/archlint/internal/errs"
	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// Builder assembles an Analyzer from configuration: root resolution,
// rule wiring, and severity overrides.
type Builder struct {
	Root           string
	Exclude        []string
	RespectGitignore bool
	Strict         bool // parse failures abort the run instead of skipping the file
	PerFileRules   []rule.PerFileRule
	ProjectRules   []rule.ProjectRule
	RuleEnabled    func(name string) bool
	SeverityOverride func(name string) (types.Severity, bool)
	Logger         *zap.Logger
	Workers        int
}

// Analyzer runs a fully-configured analysis.
type Analyzer struct {
	b Builder
}

// Build fills in defaults for unset Builder fields and freezes the Builder
// into an Analyzer; it does no validation and its error is always nil.
func (b Builder) Build() (*Analyzer, error) {
	if b.Root == "" {
		b.Root = "."
	}
	if b.RuleEnabled == nil {
		b.RuleEnabled = func(string) bool { return true }
	}
	if b.SeverityOverride == nil {
		b.SeverityOverride = func(string) (types.Severity, bool) { return 0, false }
	}
	if b.Logger == nil {
		b.Logger = zap.NewNop()
	}
	return &Analyzer{b: b}, nil
}

// Analyze runs the per-file pass followed by the project pass, and returns
// the final, deterministically sorted Result.
func (a *Analyzer) Analyze(ctx context.Context) (*types.Result, error) {
	root, err := filepath.Abs(a.b.Root)
	if err != nil {
		return nil, &errs.AnalyzerError{Op: "resolve-root", Path: a.b.Root, Err: err}
	}

	rels, err := discover.Walk(ctx, discover.Options{
		Root:             root,
		Extensions:       []string{".rs"},
		Exclude:          a.b.Exclude,
		RespectGitignore: a.b.RespectGitignore,
		Workers:          a.b.Workers,
	})
	if err != nil {
		return nil, err
	}

	result := &types.Result{}
	var fileContexts []types.FileContext

	for _, rel := range rels {
		abs := filepath.Join(root, rel)
		content, err := os.ReadFile(abs)
		if err != nil {
			return nil, &errs.AnalyzerError{Op: "read", Path: rel, Err: err}
		}
		fc := types.NewFileContext(abs, rel, string(content))
		fileContexts = append(fileContexts, fc)

		tree, perr := rustsyntax.Parse(content)
		if perr != nil {
			if a.b.Strict {
				return nil, &errs.AnalyzerError{Op: "parse", Path: rel, Err: perr}
			}
			a.b.Logger.Warn("skipping file with parse error", zap.String("path", rel), zap.Error(perr))
			continue
		}

		for _, r := range a.b.PerFileRules {
			id := r.Identity()
			if !a.b.RuleEnabled(id.Name) {
				continue
			}
			findings := r.CheckFile(fc, tree)
			applySeverityOverride(findings, a.b.SeverityOverride(id.Name))
			result.Findings = append(result.Findings, findings...)
		}
		// tree and content fall out of scope here; nothing retains them
		// past this file's pass, keeping memory use bounded.
	}
	result.FilesChecked = len(fileContexts)

	pc := types.ProjectContext{Root: root, Files: fileContexts}
	for _, r := range a.b.ProjectRules {
		id := r.Identity()
		if !a.b.RuleEnabled(id.Name) {
			continue
		}
		findings := r.CheckProject(pc)
		applySeverityOverride(findings, a.b.SeverityOverride(id.Name))
		result.Findings = append(result.Findings, findings...)
	}

	result.Sort()
	return result, nil
}

func applySeverityOverride(findings []types.Finding, sev types.Severity, ok bool) {
	if !ok {
		return
	}
	for i := range findings {
		findings[i].Severity = sev
	}
}

// ResolveRoot applies the root-resolution fallback: an explicit root,
// else the config document's analyzer.root, else the current directory.
func ResolveRoot(explicit string, doc *config.Document) (string, error) {
	root := explicit
	if root == "" && doc != nil {
		root = doc.Analyzer.Root
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", root, err)
	}
	return abs, nil
}
