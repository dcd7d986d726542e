package declarative_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlint/internal/declarative"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

func TestUsePatternMatchesSingleWildcard(t *testing.T) {
	p := declarative.UsePattern("crate::domain::*")
	assert.True(t, p.Matches("crate::domain::User"))
	assert.False(t, p.Matches("crate::domain::models::User"))
}

func TestUsePatternMatchesDoubleWildcard(t *testing.T) {
	p := declarative.UsePattern("crate::infra::**")
	assert.True(t, p.Matches("crate::infra::db::Pool"))
	assert.True(t, p.Matches("crate::infra"))
	assert.False(t, p.Matches("crate::domain::User"))
}

func rawWithScope(scopeName string, globs []string) declarative.RawConfig {
	return declarative.RawConfig{
		Scopes: []declarative.ScopeDTO{{Name: scopeName, Globs: globs}},
	}
}

func TestNewDeclarativeConfigRejectsUnknownScopeRef(t *testing.T) {
	raw := declarative.RawConfig{
		RestrictUses: []declarative.RestrictUseDTO{{Scope: "missing", Deny: []string{"crate::infra::**"}}},
	}
	_, errs := declarative.NewDeclarativeConfig(raw)
	require.NotEmpty(t, errs)
}

func TestNewDeclarativeConfigCollectsMultipleErrors(t *testing.T) {
	raw := declarative.RawConfig{
		RestrictUses: []declarative.RestrictUseDTO{{Scope: "missing-a"}},
		RequireUses:  []declarative.RequireUseDTO{{Scope: "missing-b"}},
	}
	_, errs := declarative.NewDeclarativeConfig(raw)
	assert.Len(t, errs, 2)
}

func TestNewDeclarativeConfigEmptySectionsYieldNoRules(t *testing.T) {
	cfg, errs := declarative.NewDeclarativeConfig(declarative.RawConfig{})
	require.Empty(t, errs)
	assert.Empty(t, cfg.Rules())
}

func TestRestrictUseRuleFlagsDeniedImport(t *testing.T) {
	raw := rawWithScope("domain", []string{"src/domain/**"})
	raw.RestrictUses = []declarative.RestrictUseDTO{
		{Name: "no-infra-in-domain", Scope: "domain", Deny: []string{"crate::infra::**"}, Message: "domain may not see infra"},
	}
	cfg, errs := declarative.NewDeclarativeConfig(raw)
	require.Empty(t, errs)
	rules := cfg.Rules()
	require.Len(t, rules, 1)

	tree, err := rustsyntax.Parse([]byte("use crate::infra::db::Pool;"))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/domain/user.rs", "src/domain/user.rs", "use crate::infra::db::Pool;")
	findings := rules[0].CheckFile(fc, tree)
	require.Len(t, findings, 1)
	assert.Equal(t, "ALD001", findings[0].Code)
	assert.Equal(t, "no-infra-in-domain", findings[0].RuleName)
	assert.Equal(t, types.SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "domain may not see infra")
	assert.Contains(t, findings[0].Message, "crate::infra::db::Pool")
}

func TestRestrictUseRuleHonorsConfiguredSeverity(t *testing.T) {
	raw := rawWithScope("domain", []string{"src/domain/**"})
	raw.RestrictUses = []declarative.RestrictUseDTO{
		{Name: "no-infra-in-domain", Scope: "domain", Deny: []string{"crate::infra::**"}, Severity: "warning"},
	}
	cfg, errs := declarative.NewDeclarativeConfig(raw)
	require.Empty(t, errs)
	rules := cfg.Rules()
	require.Len(t, rules, 1)

	tree, err := rustsyntax.Parse([]byte("use crate::infra::db::Pool;"))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/domain/user.rs", "src/domain/user.rs", "use crate::infra::db::Pool;")
	findings := rules[0].CheckFile(fc, tree)
	require.Len(t, findings, 1)
	assert.Equal(t, types.SeverityWarning, findings[0].Severity)
}

func TestNewDeclarativeConfigRejectsAmbiguousScopeRef(t *testing.T) {
	raw := declarative.RawConfig{
		RestrictUses: []declarative.RestrictUseDTO{
			{Name: "both-set", Scope: "domain", Files: []string{"src/domain/**"}, Deny: []string{"crate::infra::**"}},
		},
	}
	_, errs := declarative.NewDeclarativeConfig(raw)
	require.NotEmpty(t, errs)
}

func TestRestrictUseRuleSupportsInlineFilesScope(t *testing.T) {
	raw := declarative.RawConfig{
		RestrictUses: []declarative.RestrictUseDTO{
			{Name: "no-infra-inline", Files: []string{"src/domain/**"}, Deny: []string{"crate::infra::**"}, Message: "no infra"},
		},
	}
	cfg, errs := declarative.NewDeclarativeConfig(raw)
	require.Empty(t, errs)
	rules := cfg.Rules()
	require.Len(t, rules, 1)

	tree, err := rustsyntax.Parse([]byte("use crate::infra::db::Pool;"))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/domain/user.rs", "src/domain/user.rs", "use crate::infra::db::Pool;")
	findings := rules[0].CheckFile(fc, tree)
	require.Len(t, findings, 1)
}

func TestRestrictUseRuleIgnoresFilesOutsideScope(t *testing.T) {
	raw := rawWithScope("domain", []string{"src/domain/**"})
	raw.RestrictUses = []declarative.RestrictUseDTO{
		{Scope: "domain", Deny: []string{"crate::infra::**"}},
	}
	cfg, errs := declarative.NewDeclarativeConfig(raw)
	require.Empty(t, errs)
	rules := cfg.Rules()
	require.Len(t, rules, 1)

	tree, err := rustsyntax.Parse([]byte("use crate::infra::db::Pool;"))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/infra/db.rs", "src/infra/db.rs", "use crate::infra::db::Pool;")
	assert.Empty(t, rules[0].CheckFile(fc, tree))
}

func TestRequireUseRuleFlagsDiscouragedCrate(t *testing.T) {
	raw := rawWithScope("all", []string{"src/**"})
	raw.RequireUses = []declarative.RequireUseDTO{
		{Scope: "all", Over: []string{"log"}, Alternative: "tracing"},
	}
	cfg, errs := declarative.NewDeclarativeConfig(raw)
	require.Empty(t, errs)
	rules := cfg.Rules()
	require.Len(t, rules, 1)

	tree, err := rustsyntax.Parse([]byte("use log::info;"))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/lib.rs", "src/lib.rs", "use log::info;")
	findings := rules[0].CheckFile(fc, tree)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "tracing")
}

func TestScopeDepRuleFlagsForbiddenScopeDependency(t *testing.T) {
	raw := declarative.RawConfig{
		Scopes: []declarative.ScopeDTO{
			{Name: "domain", Globs: []string{"src/domain/**"}},
			{Name: "infra", Globs: []string{"src/infra/**"}},
		},
		ScopeDeps: []declarative.ScopeDepDTO{
			{From: "domain", Deny: []string{"infra"}},
		},
	}
	cfg, errs := declarative.NewDeclarativeConfig(raw)
	require.Empty(t, errs)
	rules := cfg.Rules()
	require.Len(t, rules, 1)

	tree, err := rustsyntax.Parse([]byte("use crate::infra::db::Pool;"))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/domain/user.rs", "src/domain/user.rs", "use crate::infra::db::Pool;")
	findings := rules[0].CheckFile(fc, tree)
	require.Len(t, findings, 1)
	assert.Equal(t, "ALD003", findings[0].Code)
}

func TestScopeDepRuleAllowsUndeniedScopeDependency(t *testing.T) {
	raw := declarative.RawConfig{
		Scopes: []declarative.ScopeDTO{
			{Name: "domain", Globs: []string{"src/domain/**"}},
			{Name: "shared", Globs: []string{"src/shared/**"}},
		},
		ScopeDeps: []declarative.ScopeDepDTO{
			{From: "domain", Deny: []string{}},
		},
	}
	cfg, errs := declarative.NewDeclarativeConfig(raw)
	require.Empty(t, errs)
	rules := cfg.Rules()
	require.Len(t, rules, 1)

	tree, err := rustsyntax.Parse([]byte("use crate::shared::util::helper;"))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/domain/user.rs", "src/domain/user.rs", "use crate::shared::util::helper;")
	assert.Empty(t, rules[0].CheckFile(fc, tree))
}
