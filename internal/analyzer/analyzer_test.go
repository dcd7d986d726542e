package analyzer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlint/internal/analyzer"
	"github.com/oxhq/archlint/internal/builtin"
	"github.com/oxhq/archlint/internal/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzeFindsViolationsAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "fn f() { a.unwrap(); }\n")
	writeFile(t, root, "src/safe.rs", "fn g() -> Result<(), ()> { Ok(()) }\n")

	az, err := analyzer.Builder{
		Root:         root,
		PerFileRules: builtin.All(),
	}.Build()
	require.NoError(t, err)

	res, err := az.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.FilesChecked)
	require.NotEmpty(t, res.Findings)
	assert.Equal(t, "AL001", res.Findings[0].Code)
}

func TestAnalyzeSortsFindingsByFileThenLine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/b.rs", "fn f() { a.unwrap(); }\n")
	writeFile(t, root, "src/a.rs", "fn f() {\n    a.unwrap();\n    b.unwrap();\n}\n")

	az, err := analyzer.Builder{Root: root, PerFileRules: builtin.All()}.Build()
	require.NoError(t, err)
	res, err := az.Analyze(context.Background())
	require.NoError(t, err)

	require.True(t, len(res.Findings) >= 3)
	for i := 1; i < len(res.Findings); i++ {
		prev, cur := res.Findings[i-1].Location, res.Findings[i].Location
		less := prev.File < cur.File || (prev.File == cur.File && prev.Line <= cur.Line)
		assert.True(t, less, "findings not sorted: %+v then %+v", prev, cur)
	}
}

func TestAnalyzeRuleEnabledGateSuppressesRule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "fn f() { a.unwrap(); }\n")

	az, err := analyzer.Builder{
		Root:         root,
		PerFileRules: builtin.All(),
		RuleEnabled:  func(name string) bool { return name != "no-unwrap-expect" },
	}.Build()
	require.NoError(t, err)
	res, err := az.Analyze(context.Background())
	require.NoError(t, err)
	for _, f := range res.Findings {
		assert.NotEqual(t, "AL001", f.Code)
	}
}

func TestAnalyzeSeverityOverrideAppliesToFindings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "fn f() { a.unwrap(); }\n")

	az, err := analyzer.Builder{
		Root:         root,
		PerFileRules: builtin.All(),
		SeverityOverride: func(name string) (types.Severity, bool) {
			if name == "no-unwrap-expect" {
				return types.SeverityInfo, true
			}
			return 0, false
		},
	}.Build()
	require.NoError(t, err)
	res, err := az.Analyze(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.Findings)
	assert.Equal(t, types.SeverityInfo, res.Findings[0].Severity)
}

func TestResolveRootFallsBackToCurrentDirectory(t *testing.T) {
	root, err := analyzer.ResolveRoot("", nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(root))
}
