package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlint/internal/types"
)

func TestExitCodeZeroWithoutErrorFindings(t *testing.T) {
	res := &types.Result{Findings: []types.Finding{{Severity: types.SeverityWarning}}}
	assert.Equal(t, 0, exitCode(res))
}

func TestExitCodeNonZeroWithErrorFinding(t *testing.T) {
	res := &types.Result{Findings: []types.Finding{{Severity: types.SeverityError}}}
	assert.Equal(t, 1, exitCode(res))
}

func TestListRulesCmdPrintsFirstAndLastBuiltinCodes(t *testing.T) {
	cmd := newListRulesCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "AL001")
	assert.Contains(t, out, "AL013")
}

func TestInitCmdWritesStarterConfig(t *testing.T) {
	dir := t.TempDir()
	cmd := newInitCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(filepath.Join(dir, "arch-lint.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "preset")
}

func TestInitCmdRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arch-lint.toml"), []byte("existing"), 0o644))

	cmd := newInitCmd()
	cmd.SetArgs([]string{dir})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	assert.Error(t, cmd.Execute())
}

func TestRootCmdWiresAllSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["check"])
	assert.True(t, names["list-rules"])
	assert.True(t, names["init"])
}
