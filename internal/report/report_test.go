package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlint/internal/report"
	"github.com/oxhq/archlint/internal/types"
)

func sampleResult() *types.Result {
	return &types.Result{
		FilesChecked: 2,
		Findings: []types.Finding{
			{
				Code: "AL001", RuleName: "no-unwrap-expect", Severity: types.SeverityError,
				Location: types.Location{File: "src/lib.rs", Line: 3, Column: 5},
				Message:  "calling .unwrap() can panic",
				Suggestion: &types.Suggestion{Message: "use ? instead"},
			},
			{
				Code: "AL012", RuleName: "require-doc-comments", Severity: types.SeverityWarning,
				Location: types.Location{File: "src/lib.rs", Line: 10, Column: 1},
				Message:  "public item has no doc comment",
			},
		},
	}
}

func TestParseFormatRecognizesAllModes(t *testing.T) {
	for in, want := range map[string]report.Format{
		"":        report.FormatText,
		"text":    report.FormatText,
		"compact": report.FormatCompact,
		"json":    report.FormatJSON,
	} {
		got, err := report.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	_, err := report.ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteTextIncludesMessageAndSuggestion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleResult(), types.SeverityInfo, report.FormatText))
	out := buf.String()
	assert.Contains(t, out, "AL001")
	assert.Contains(t, out, "calling .unwrap() can panic")
	assert.Contains(t, out, "use ? instead")
	assert.Contains(t, out, "2 file(s) checked")
}

func TestWriteTextFiltersByThreshold(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleResult(), types.SeverityError, report.FormatText))
	out := buf.String()
	assert.Contains(t, out, "AL001")
	assert.NotContains(t, out, "AL012")
}

func TestWriteCompactOneLinePerFinding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleResult(), types.SeverityInfo, report.FormatCompact))
	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	assert.Equal(t, 2, lines)
}

// jsonFinding mirrors types.Finding but with Severity decoded as the
// lowercase string MarshalJSON produces, since types.Finding has no
// UnmarshalJSON and can't be decoded straight back from that string.
type jsonFinding struct {
	Code     string `json:"code"`
	RuleName string `json:"rule_name"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func TestWriteJSONRoundTripsFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleResult(), types.SeverityInfo, report.FormatJSON))

	var decoded struct {
		FilesChecked int           `json:"files_checked"`
		Findings     []jsonFinding `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.FilesChecked)
	require.Len(t, decoded.Findings, 2)
	assert.Equal(t, "error", decoded.Findings[0].Severity)
}

func TestWriteJSONFiltersByThreshold(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleResult(), types.SeverityError, report.FormatJSON))
	var decoded struct {
		Findings []jsonFinding `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Findings, 1)
	assert.Equal(t, "AL001", decoded.Findings[0].Code)
}
