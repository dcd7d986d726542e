package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oxhq/archlint/internal/builtin"
)

func newListRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-rules",
		Short: "List the built-in rule catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := builtin.All()
			sort.Slice(rules, func(i, j int) bool {
				return rules[i].Identity().Code < rules[j].Identity().Code
			})
			out := cmd.OutOrStdout()
			for _, r := range rules {
				id := r.Identity()
				fmt.Fprintf(out, "%-8s %-24s %-8s %s\n", id.Code, id.Name, id.DefaultSeverity, id.Description)
			}
			return nil
		},
	}
}
