package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlint/internal/builtin"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

func check(t *testing.T, rule interface {
	CheckFile(types.FileContext, *rustsyntax.Tree) []types.Finding
}, src string) []types.Finding {
	t.Helper()
	tree, err := rustsyntax.Parse([]byte(src))
	require.NoError(t, err)
	fc := types.NewFileContext("/abs/src/lib.rs", "src/lib.rs", src)
	return rule.CheckFile(fc, tree)
}

func TestNoUnwrapExpectFlagsUnwrapAndExpect(t *testing.T) {
	findings := check(t, builtin.NoUnwrapExpect{}, `fn f() { a.unwrap(); b.expect("oops"); }`)
	require.Len(t, findings, 2)
	assert.Equal(t, "AL001", findings[0].Code)
	assert.Equal(t, types.SeverityError, findings[0].Severity)
}

func TestNoUnwrapExpectSkipsTestContext(t *testing.T) {
	findings := check(t, builtin.NoUnwrapExpect{}, "#[test]\nfn it_works() { a.unwrap(); }")
	assert.Empty(t, findings)
}

func TestNoUnwrapExpectPartialCmpGetsNaNNote(t *testing.T) {
	findings := check(t, builtin.NoUnwrapExpect{}, `fn f() { a.partial_cmp(&b).unwrap(); }`)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "NaN")
}

func TestNoSyncIOFlagsFsFunctionsByPath(t *testing.T) {
	findings := check(t, builtin.NoSyncIO{}, `async fn f() { std::fs::read("x").unwrap(); }`)
	require.Len(t, findings, 1)
	assert.Equal(t, "AL002", findings[0].Code)
}

func TestNoSyncIOAllowsAsyncPrefix(t *testing.T) {
	findings := check(t, builtin.NoSyncIO{}, `async fn f() { tokio::fs::read("x").await; }`)
	assert.Empty(t, findings)
}

func TestNoSyncIOFlagsPathMethods(t *testing.T) {
	findings := check(t, builtin.NoSyncIO{}, `fn f() { if p.exists() {} }`)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "exists")
}

func TestNoErrorSwallowingFlagsIfLetErr(t *testing.T) {
	findings := check(t, builtin.NoErrorSwallowing{}, `fn f() { if let Err(_) = g() {} }`)
	require.Len(t, findings, 1)
	assert.Equal(t, "AL003", findings[0].Code)
}

func TestNoErrorSwallowingFlagsLogOnlyMatchArm(t *testing.T) {
	src := `fn f() { match g() { Ok(v) => v, Err(e) => { error!("{}", e); } }; }`
	findings := check(t, builtin.NoErrorSwallowing{}, src)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "match arm")
}

func TestNoErrorSwallowingAllowsPropagatingArm(t *testing.T) {
	src := `fn f() { match g() { Ok(v) => v, Err(e) => { return Err(e); } }; }`
	findings := check(t, builtin.NoErrorSwallowing{}, src)
	assert.Empty(t, findings)
}

func TestHandlerComplexityFlagsOversizedHandlerFunction(t *testing.T) {
	body := "fn handle_request() {\n"
	for i := 0; i < 65; i++ {
		body += "    let _x = 1;\n"
	}
	body += "}\n"
	findings := check(t, builtin.HandlerComplexity{}, body)
	require.Len(t, findings, 1)
	assert.Equal(t, "AL004", findings[0].Code)
}

func TestHandlerComplexityIgnoresNonHandlerFunction(t *testing.T) {
	body := "fn compute() {\n"
	for i := 0; i < 65; i++ {
		body += "    let _x = 1;\n"
	}
	body += "}\n"
	findings := check(t, builtin.HandlerComplexity{}, body)
	assert.Empty(t, findings)
}

func TestHandlerComplexityFlagsOversizedActionEnum(t *testing.T) {
	src := "enum Action {\n"
	for i := 0; i < 14; i++ {
		src += "    Variant" + string(rune('A'+i)) + ",\n"
	}
	src += "}\n"
	findings := check(t, builtin.HandlerComplexity{}, src)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "variants")
}

func TestRequireThiserrorFlagsUndeclaredErrorType(t *testing.T) {
	findings := check(t, builtin.RequireThiserror{}, "struct ParseError;")
	require.Len(t, findings, 1)
	assert.Equal(t, "AL005", findings[0].Code)
}

func TestRequireThiserrorAllowsDerivedErrorType(t *testing.T) {
	findings := check(t, builtin.RequireThiserror{}, "#[derive(Debug, Error)]\nstruct ParseError;")
	assert.Empty(t, findings)
}

func TestRequireTracingFlagsLogCrateMacro(t *testing.T) {
	findings := check(t, builtin.NewRequireTracing(), `fn f() { log::info!("hi"); }`)
	require.Len(t, findings, 1)
	assert.Equal(t, "AL006", findings[0].Code)
}

func TestRequireTracingAllowsTracingCrate(t *testing.T) {
	findings := check(t, builtin.NewRequireTracing(), `fn f() { tracing::info!("hi"); }`)
	assert.Empty(t, findings)
}

func TestTracingEnvInitFlagsHardcodedLevel(t *testing.T) {
	findings := check(t, builtin.TracingEnvInit{}, `fn f() { let filter = EnvFilter::new("info"); }`)
	require.Len(t, findings, 1)
	assert.Equal(t, "AL007", findings[0].Code)
}

func TestTracingEnvInitAllowsEnvFallbackClosure(t *testing.T) {
	src := `fn f() { let filter = EnvFilter::try_from_default_env().unwrap_or_else(|_| EnvFilter::new("info")); }`
	findings := check(t, builtin.TracingEnvInit{}, src)
	assert.Empty(t, findings)
}

func TestAsyncTraitSendCheckOnlyFiresOnSingleThreadedRuntime(t *testing.T) {
	src := "#[async_trait]\ntrait Fetcher { async fn fetch(&self); }"
	assert.Empty(t, check(t, builtin.AsyncTraitSendCheck{SingleThreadedRuntime: false}, src))

	findings := check(t, builtin.AsyncTraitSendCheck{SingleThreadedRuntime: true}, src)
	require.Len(t, findings, 1)
	assert.Equal(t, "AL009", findings[0].Code)
}

func TestAsyncTraitSendCheckAllowsNoSendOptOut(t *testing.T) {
	src := "#[async_trait(?Send)]\ntrait Fetcher { async fn fetch(&self); }"
	findings := check(t, builtin.AsyncTraitSendCheck{SingleThreadedRuntime: true}, src)
	assert.Empty(t, findings)
}

func TestPreferFromOverIntoFlagsIntoImpl(t *testing.T) {
	findings := check(t, builtin.PreferFromOverInto{}, "impl Into<Target> for Source { fn into(self) -> Target { todo!() } }")
	require.Len(t, findings, 1)
	assert.Equal(t, "AL010", findings[0].Code)
}

func TestPreferFromOverIntoAllowsFromImpl(t *testing.T) {
	findings := check(t, builtin.PreferFromOverInto{}, "impl From<Source> for Target { fn from(s: Source) -> Target { todo!() } }")
	assert.Empty(t, findings)
}

func TestNoPanicInLibFlagsPanicFamily(t *testing.T) {
	findings := check(t, builtin.NoPanicInLib{}, `fn f() { panic!("boom"); }`)
	require.Len(t, findings, 1)
	assert.Equal(t, types.SeverityError, findings[0].Severity)
}

func TestNoPanicInLibSkipsTestFunctions(t *testing.T) {
	findings := check(t, builtin.NoPanicInLib{}, "#[test]\nfn it_panics() { unreachable!(); }")
	assert.Empty(t, findings)
}

func TestRequireDocCommentsFlagsUndocumentedPublicFn(t *testing.T) {
	findings := check(t, builtin.RequireDocComments{}, "pub fn do_thing() {}")
	require.Len(t, findings, 1)
	assert.Equal(t, "AL012", findings[0].Code)
}

func TestRequireDocCommentsAllowsDocumented(t *testing.T) {
	findings := check(t, builtin.RequireDocComments{}, "/// Does the thing.\npub fn do_thing() {}")
	assert.Empty(t, findings)
}

func TestRequireDocCommentsIgnoresPrivateItems(t *testing.T) {
	findings := check(t, builtin.RequireDocComments{}, "fn helper() {}")
	assert.Empty(t, findings)
}

func TestNoSilentResultDropFlagsUnwrapOrAndLetUnderscore(t *testing.T) {
	findings := check(t, builtin.NoSilentResultDrop{}, `fn f() { let v = g().unwrap_or(0); let _ = h(); }`)
	require.Len(t, findings, 2)
}

func TestNoSilentResultDropSkipOkHonored(t *testing.T) {
	findings := check(t, builtin.NoSilentResultDrop{SkipOk: true}, `fn f() { let v = g().ok(); }`)
	assert.Empty(t, findings)
}
