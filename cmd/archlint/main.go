// Command archlint checks a Rust-shaped project against its configured
// architecture rules: the fixed built-in catalog, any declarative
// scope/restrict-use/require-use/scope-dep rules, and (when the config
// document declares layers) the cross-language layer engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxhq/archlint/internal/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "archlint: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "archlint",
		Short: "Static architecture linter",
		Long:  "archlint enforces project-level design rules: restricted imports, layering, and a fixed catalog of structural checks.",
	}
	root.AddCommand(newCheckCmd(), newListRulesCmd(), newInitCmd())
	return root
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// exitCode maps a Result's severity-floor-gated status to a process exit
// status: zero iff no finding has severity Error.
func exitCode(res *types.Result) int {
	if res.HasViolationsAt(types.SeverityError) {
		return 1
	}
	return 0
}
