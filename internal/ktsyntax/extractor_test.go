package ktsyntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlint/internal/ktsyntax"
)

func TestAnalyzeExtractsPackageAndImports(t *testing.T) {
	src := `package com.example.domain

import com.example.domain.repository.UserRepository
import android.content.Context

class UserService
`
	fa, err := ktsyntax.Extractor{}.Analyze([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "com.example.domain", fa.PackageName)
	require.Len(t, fa.Imports, 2)
	assert.Equal(t, "com.example.domain.repository.UserRepository", fa.Imports[0].Path)
	assert.Equal(t, "android.content.Context", fa.Imports[1].Path)
}

func TestAnalyzeExtractsTopLevelClass(t *testing.T) {
	src := "package com.example.domain\n\nclass UserRepository\n"
	fa, err := ktsyntax.Extractor{}.Analyze([]byte(src))
	require.NoError(t, err)
	require.Len(t, fa.Decls, 1)
	assert.Equal(t, "UserRepository", fa.Decls[0].Name)
	assert.Equal(t, "class", fa.Decls[0].Kind)
}

func TestExtractorDeclaresExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".kt", ".kts"}, ktsyntax.Extractor{}.Extensions())
	assert.Equal(t, "kotlin", ktsyntax.Extractor{}.Language())
}
