package builtin

import (
	"strings"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// NoSyncIO is AL002: flags synchronous filesystem I/O wherever it appears,
// whether or not the enclosing function is async — the fs
// read/write/metadata family called by path (`fs::read(...)`,
// `std::fs::write(...)`), and Path's synchronous membership/canonicalization
// methods (`.exists()`, `.is_file()`, `.is_dir()`, `.canonicalize()`). Calls
// whose path starts with an async-alternative prefix (tokio::, async_std::,
// smol::) are allow-listed.
type NoSyncIO struct{}

var syncFsFuncs = map[string]bool{
	"read": true, "read_to_string": true, "write": true, "metadata": true,
	"canonicalize": true, "remove_file": true, "create_dir": true,
	"create_dir_all": true, "remove_dir": true, "remove_dir_all": true,
	"copy": true, "rename": true, "read_dir": true, "set_permissions": true,
}

var syncPathMethods = map[string]bool{
	"exists": true, "is_file": true, "is_dir": true, "canonicalize": true,
	"metadata": true, "symlink_metadata": true, "read_link": true,
}

var asyncPrefixes = []string{"tokio::", "async_std::", "smol::"}

func (NoSyncIO) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL002",
		Name:            "no-sync-io",
		Description:     "Synchronous filesystem I/O is forbidden; use the async runtime's equivalents.",
		DefaultSeverity: types.SeverityError,
		RequiresReason:  rule.ReasonRequired(types.SeverityError),
	}
}

func (al NoSyncIO) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || fc.IsTest {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, call := range rustsyntax.FindAll(tree.Root, "call_expression") {
		fn := call.ChildByFieldName("function")
		if fn == nil {
			continue
		}
		switch fn.Type() {
		case "scoped_identifier":
			path := tree.Text(fn)
			if hasAsyncPrefix(path) {
				continue
			}
			last := lastSegment(path)
			if syncFsFuncs[last] && strings.Contains(path, "fs::") {
				out = append(out, r.at(call, "synchronous fs::"+last+" blocks the async executor", &types.Suggestion{
					Message: "use tokio::fs::" + last + " (or your runtime's async equivalent)",
				})...)
			}
		case "field_expression":
			method := tree.MethodName(fn)
			if syncPathMethods[method] {
				out = append(out, r.at(call, "synchronous Path::"+method+"() blocks the async executor", &types.Suggestion{
					Message: "use tokio::fs::" + method + " (or your runtime's async equivalent)",
				})...)
			}
		}
	}
	return withFile(fc, out)
}

func hasAsyncPrefix(path string) bool {
	for _, p := range asyncPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "::"); i >= 0 {
		return path[i+2:]
	}
	return path
}
