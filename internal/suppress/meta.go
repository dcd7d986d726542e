package suppress

import "github.com/oxhq/archlint/internal/types"

// MissingReasonFinding builds the mandatory-reason meta-finding raised
// when a suppression is detected without a reason: a Warning at
// the same location as the original violation would have been, naming the
// rule and suggesting the fix. The underlying violation itself is not
// re-reported.
func MissingReasonFinding(code, ruleName string, loc types.Location) types.Finding {
	return types.Finding{
		Code:     code,
		RuleName: ruleName,
		Severity: types.SeverityWarning,
		Location: loc,
		Message:  "Allow directive for '" + ruleName + "' is missing required reason",
		Suggestion: &types.Suggestion{
			Message: `add reason="..." explaining why this suppression is safe`,
		},
	}
}

// Gate is the common per-rule decision point: given a suppression Result
// and whether the rule requires a reason, decide whether to report the
// original finding, emit a meta-finding instead, or emit nothing.
//
//   - not suppressed            -> report the original finding
//   - suppressed, reason OK     -> report nothing
//   - suppressed, reason required but missing -> emit the meta-finding only
func Gate(r Result, requiresReason bool) (reportOriginal, emitMeta bool) {
	if !r.Suppressed {
		return true, false
	}
	if requiresReason && !r.HasReason {
		return false, true
	}
	return false, false
}
