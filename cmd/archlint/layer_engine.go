package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/oxhq/archlint/internal/config"
	"github.com/oxhq/archlint/internal/discover"
	"github.com/oxhq/archlint/internal/errs"
	"github.com/oxhq/archlint/internal/ktsyntax"
	"github.com/oxhq/archlint/internal/layer"
	"github.com/oxhq/archlint/internal/types"
)

// runLayerEngine drives the cross-language layer engine over every Kotlin
// source file under root. The CLI picks this mode whenever the config
// document declares at least one [[layers]] entry, running it instead of
// the primary built-in/declarative rule engine.
func runLayerEngine(ctx context.Context, root string, doc *config.Document) (*types.Result, error) {
	archCfg, err := layer.NewArchConfig(doc.ArchConfig())
	if err != nil {
		return nil, &errs.ConfigError{Path: "layers", Err: err}
	}
	engine := layer.NewArchRuleEngine(archCfg)
	extractor := ktsyntax.Extractor{}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &errs.AnalyzerError{Op: "resolve-root", Path: root, Err: err}
	}

	rels, err := discover.Walk(ctx, discover.Options{
		Root:             absRoot,
		Extensions:       extractor.Extensions(),
		Exclude:          doc.Analyzer.Exclude,
		RespectGitignore: doc.RespectGitignore(),
	})
	if err != nil {
		return nil, err
	}

	result := &types.Result{}
	for _, rel := range rels {
		abs := filepath.Join(absRoot, rel)
		content, err := os.ReadFile(abs)
		if err != nil {
			return nil, &errs.AnalyzerError{Op: "read", Path: rel, Err: err}
		}
		fa, err := extractor.Analyze(content)
		if err != nil {
			continue
		}
		fa.Path = rel
		result.Findings = append(result.Findings, engine.Check(fa)...)
	}
	result.FilesChecked = len(rels)
	result.Sort()
	return result, nil
}
