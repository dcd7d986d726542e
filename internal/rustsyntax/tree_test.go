package rustsyntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlint/internal/rustsyntax"
)

func TestParseValidSource(t *testing.T) {
	tree, err := rustsyntax.Parse([]byte("fn main() { let x = 1; }"))
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	assert.Equal(t, "source_file", tree.Root.Type())
}

func TestParseEmptySource(t *testing.T) {
	tree, err := rustsyntax.Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, int(tree.Root.ChildCount()))
}

func TestPosIsOneIndexed(t *testing.T) {
	tree, err := rustsyntax.Parse([]byte("fn main() {}\nfn second() {}"))
	require.NoError(t, err)
	funcs := rustsyntax.FindAll(tree.Root, "function_item")
	require.Len(t, funcs, 2)
	line, col := tree.Pos(funcs[1])
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestFindAllMatchesNodeType(t *testing.T) {
	tree, err := rustsyntax.Parse([]byte(`fn a() {} fn b() {} struct S;`))
	require.NoError(t, err)
	funcs := rustsyntax.FindAll(tree.Root, "function_item")
	assert.Len(t, funcs, 2)
	structs := rustsyntax.FindAll(tree.Root, "struct_item")
	assert.Len(t, structs, 1)
}

func TestIsPublic(t *testing.T) {
	tree, err := rustsyntax.Parse([]byte("pub fn a() {}\nfn b() {}"))
	require.NoError(t, err)
	funcs := rustsyntax.FindAll(tree.Root, "function_item")
	require.Len(t, funcs, 2)
	assert.True(t, tree.IsPublic(funcs[0]))
	assert.False(t, tree.IsPublic(funcs[1]))
}

func TestHasDocAttribute(t *testing.T) {
	src := "/// Documented.\npub fn a() {}\npub fn b() {}"
	tree, err := rustsyntax.Parse([]byte(src))
	require.NoError(t, err)
	funcs := rustsyntax.FindAll(tree.Root, "function_item")
	require.Len(t, funcs, 2)
	assert.True(t, tree.HasDocAttribute(funcs[0]))
	assert.False(t, tree.HasDocAttribute(funcs[1]))
}

func TestHasDeriveContaining(t *testing.T) {
	src := "#[derive(Debug, Error)]\nstruct MyError;"
	tree, err := rustsyntax.Parse([]byte(src))
	require.NoError(t, err)
	items := rustsyntax.FindAll(tree.Root, "struct_item")
	require.Len(t, items, 1)
	attrs := rustsyntax.AttributeStack(items[0])
	assert.True(t, tree.HasDeriveContaining(attrs, "Error"))
	assert.False(t, tree.HasDeriveContaining(attrs, "Clone"))
}

func TestEnclosingTestAttr(t *testing.T) {
	src := "#[test]\nfn it_works() { x.unwrap(); }\nfn other() { y.unwrap(); }"
	tree, err := rustsyntax.Parse([]byte(src))
	require.NoError(t, err)
	calls := tree.CallsByMethod("unwrap")
	require.Len(t, calls, 2)
	assert.True(t, tree.EnclosingTestAttr(calls[0].Node))
	assert.False(t, tree.EnclosingTestAttr(calls[1].Node))
}
