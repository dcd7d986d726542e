// Package report formats an analysis types.Result for human or machine
// consumption: a grouped text report, a compact one-line-per-finding form,
// and a JSON serialization.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/archlint/internal/types"
)

// Format selects an output mode.
type Format int

const (
	FormatText Format = iota
	FormatCompact
	FormatJSON
)

// ParseFormat parses the --format flag value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "text":
		return FormatText, nil
	case "compact":
		return FormatCompact, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

// Write renders res to w in the given format, including only findings at
// or above threshold.
func Write(w io.Writer, res *types.Result, threshold types.Severity, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res, threshold)
	case FormatCompact:
		return writeCompact(w, res, threshold)
	default:
		return writeText(w, res, threshold)
	}
}

func writeText(w io.Writer, res *types.Result, threshold types.Severity) error {
	errorsCount, warnings, infos := res.CountsBySeverity()
	shown := 0
	for _, f := range res.Findings {
		if f.Severity < threshold {
			continue
		}
		shown++
		fmt.Fprintf(w, "%s:%d:%d: %s [%s/%s] %s\n",
			f.Location.File, f.Location.Line, f.Location.Column,
			strings.ToUpper(f.Severity.String()), f.Code, f.RuleName, f.Message)
		if f.Suggestion != nil {
			fmt.Fprintf(w, "  suggestion: %s\n", f.Suggestion.Message)
			if f.Suggestion.Replacement != nil {
				diff, err := unifiedDiff(f.Location.File, f.Suggestion.Replacement.NewText)
				if err == nil && diff != "" {
					fmt.Fprint(w, diff)
				}
			}
		}
		for _, l := range f.Labels {
			fmt.Fprintf(w, "  note at %s:%d:%d: %s\n", l.Location.File, l.Location.Line, l.Location.Column, l.Text)
		}
		if f.DocRef != "" {
			fmt.Fprintf(w, "  see: %s\n", f.DocRef)
		}
	}
	fmt.Fprintf(w, "\n%d file(s) checked, %d shown (errors=%d warnings=%d infos=%d)\n",
		res.FilesChecked, shown, errorsCount, warnings, infos)
	return nil
}

func writeCompact(w io.Writer, res *types.Result, threshold types.Severity) error {
	for _, f := range res.Findings {
		if f.Severity < threshold {
			continue
		}
		fmt.Fprintf(w, "%s:%d:%d:%s:%s:%s\n",
			f.Location.File, f.Location.Line, f.Location.Column, f.Severity, f.Code, f.Message)
	}
	return nil
}

func writeJSON(w io.Writer, res *types.Result, threshold types.Severity) error {
	filtered := make([]types.Finding, 0, len(res.Findings))
	for _, f := range res.Findings {
		if f.Severity >= threshold {
			filtered = append(filtered, f)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		FilesChecked int             `json:"files_checked"`
		Findings     []types.Finding `json:"findings"`
	}{FilesChecked: res.FilesChecked, Findings: filtered})
}

// unifiedDiff renders a suggestion's replacement text against an empty
// "before" since the analyzer never reads the rest of the file's future
// state — this shows what the replacement line would add.
func unifiedDiff(file, newText string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(""),
		B:        difflib.SplitLines(newText),
		FromFile: file,
		ToFile:   file + " (suggested)",
		Context:  0,
	}
	return difflib.GetUnifiedDiffString(ud)
}
