package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/archlint/internal/analyzer"
	"github.com/oxhq/archlint/internal/builtin"
	"github.com/oxhq/archlint/internal/config"
	"github.com/oxhq/archlint/internal/declarative"
	"github.com/oxhq/archlint/internal/report"
	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/types"
)

func newCheckCmd() *cobra.Command {
	var (
		formatFlag  string
		failOnFlag  string
		configFlag  string
		strictFlag  bool
		workersFlag int
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Analyze a project and report architecture violations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			configPath := config.Resolve(path, configFlag)
			doc, err := config.Load(configPath)
			if err != nil {
				return err
			}

			format, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			failOn := doc.FailOnSeverity()
			if failOnFlag != "" {
				sev, err := types.ParseSeverity(failOnFlag)
				if err != nil {
					return fmt.Errorf("--fail-on: %w", err)
				}
				failOn = sev
			}

			root := path
			if doc.Analyzer.Root != "" && len(args) == 0 {
				root = doc.Analyzer.Root
			}

			if doc.HasLayers() {
				res, err := runLayerEngine(context.Background(), root, doc)
				if err != nil {
					return err
				}
				if err := report.Write(cmd.OutOrStdout(), res, types.SeverityInfo, format); err != nil {
					return err
				}
				if res.HasViolationsAt(failOn) {
					os.Exit(1)
				}
				return nil
			}

			rawDeclarative := doc.DeclarativeRaw()
			declCfg, declErrs := declarative.NewDeclarativeConfig(rawDeclarative)
			if len(declErrs) > 0 {
				for _, e := range declErrs {
					fmt.Fprintln(os.Stderr, e)
				}
				return fmt.Errorf("invalid declarative configuration")
			}

			catalog := rule.NewCatalog()
			preset := config.ResolvePreset(doc.Preset)
			for _, r := range builtin.All() {
				id := r.Identity()
				if preset.Enabled != nil && !preset.Enabled[id.Name] {
					continue
				}
				catalog.Register(r)
			}
			var perFileRules []rule.PerFileRule
			perFileRules = append(perFileRules, catalog.PerFileRules()...)
			for _, r := range declCfg.Rules() {
				perFileRules = append(perFileRules, r)
			}

			ruleEnabled := func(name string) bool {
				rc, ok := doc.Rules[name]
				if !ok {
					return true
				}
				return rc.Enabled()
			}
			severityOverride := func(name string) (types.Severity, bool) {
				if rc, ok := doc.Rules[name]; ok {
					if sev, ok := rc.SeverityOverride(); ok {
						return sev, true
					}
				}
				if preset.MinSeverity > 0 {
					return preset.MinSeverity, true
				}
				return 0, false
			}

			b := analyzer.Builder{
				Root:             root,
				Exclude:          doc.Analyzer.Exclude,
				RespectGitignore: doc.RespectGitignore(),
				Strict:           strictFlag,
				PerFileRules:     perFileRules,
				RuleEnabled:      ruleEnabled,
				SeverityOverride: severityOverride,
				Logger:           newLogger(),
				Workers:          workersFlag,
			}
			az, err := b.Build()
			if err != nil {
				return err
			}

			res, err := az.Analyze(context.Background())
			if err != nil {
				return err
			}

			if err := report.Write(cmd.OutOrStdout(), res, types.SeverityInfo, format); err != nil {
				return err
			}

			if res.HasViolationsAt(failOn) {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text, compact, json")
	cmd.Flags().StringVar(&failOnFlag, "fail-on", "", "severity threshold for a nonzero exit: error, warning, info")
	cmd.Flags().StringVar(&configFlag, "config", "", "explicit path to the config document")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "treat parse failures as fatal instead of skipping the file")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "parallel file-discovery workers (0 = sequential)")
	return cmd
}
