package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/oxhq/archlint/internal/declarative"
	"github.com/oxhq/archlint/internal/errs"
	"github.com/oxhq/archlint/internal/layer"
)

// init loads a local .env file, if present, purely for ARCH_LINT_CONFIG_DIR
// local overrides during development; it is a no-op when no .env exists.
func init() {
	_ = godotenv.Load()
}

// Resolve implements the config file discovery order: an explicit
// path, then P/arch-lint.toml, then P/.arch-lint.toml, then
// $ARCH_LINT_CONFIG_DIR/config.toml (or ~/.arch-lint/config.toml). Returns
// "" if none exist — callers treat that as "use built-in defaults".
func Resolve(projectDir, explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{
		filepath.Join(projectDir, "arch-lint.toml"),
		filepath.Join(projectDir, ".arch-lint.toml"),
	}
	if dir := os.Getenv("ARCH_LINT_CONFIG_DIR"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".arch-lint", "config.toml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Load reads and parses the document at path. An empty path yields an
// empty (preset-free) Document rather than an error.
func Load(path string) (*Document, error) {
	if path == "" {
		return &Document{}, nil
	}
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, &errs.ConfigError{Path: path, Err: err}
	}
	return &doc, nil
}

// DeclarativeRaw converts the document's scope/restrict/require/scope-dep
// sections into the declarative package's raw DTO shape.
func (d Document) DeclarativeRaw() declarative.RawConfig {
	raw := declarative.RawConfig{}
	for _, s := range d.Scopes {
		raw.Scopes = append(raw.Scopes, declarative.ScopeDTO{Name: s.Name, Globs: s.Paths})
	}
	for _, r := range d.RestrictUse {
		raw.RestrictUses = append(raw.RestrictUses, declarative.RestrictUseDTO{
			Name: r.Name, Scope: r.Scope, Files: r.Files, Deny: r.Deny,
			Message: r.Message, DocRef: r.DocRef, Severity: r.Severity,
		})
	}
	for _, r := range d.RequireUse {
		raw.RequireUses = append(raw.RequireUses, declarative.RequireUseDTO{
			Name: r.Name, Scope: r.Scope, Files: r.Files, Over: r.Over, Alternative: r.Alternative,
			Message: r.Message, DocRef: r.DocRef, Severity: r.Severity,
		})
	}
	for _, sd := range d.DenyScopeDep {
		raw.ScopeDeps = append(raw.ScopeDeps, declarative.ScopeDepDTO{
			From: sd.From, Deny: sd.Deny, Message: sd.Message, DocRef: sd.DocRef, Severity: sd.Severity,
		})
	}
	return raw
}

// HasLayers reports whether the document configures the cross-language
// layer engine — its presence is what triggers that engine instead of
// the built-in/declarative one.
func (d Document) HasLayers() bool {
	return len(d.Layers) > 0
}

// ArchConfig converts the document's layer/dependency/constraint sections
// into the layer package's (unvalidated) ArchConfig shape.
func (d Document) ArchConfig() layer.ArchConfig {
	cfg := layer.ArchConfig{Allowed: d.Dependencies}
	for _, l := range d.Layers {
		cfg.Layers = append(cfg.Layers, layer.LayerDef{Name: l.Name, Prefixes: l.Packages})
	}
	for _, c := range d.Constraints {
		cfg.Constraints = append(cfg.Constraints, layer.Constraint{
			Name:               c.Name,
			InLayers:           c.InLayers,
			Pattern:            c.Pattern,
			ImportMatches:      c.ImportMatches,
			SourceMustMatch:    c.SourceMustMatch,
			SourceMustNotMatch: c.SourceMustNotMatch,
			Severity:           c.Severity,
		})
	}
	return cfg
}
