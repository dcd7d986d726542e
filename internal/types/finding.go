package types

// Location pinpoints a finding within a file, relative to the project root.
// Line and Column are 1-indexed; Offset and Length are optional byte-level
// refinements used by suggestion replacements.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset *int   `json:"offset,omitempty"`
	Length *int   `json:"length,omitempty"`
}

// Replacement is a literal text substitution at a Location, carried by a
// Suggestion but never applied by the linter itself (see Non-goals).
type Replacement struct {
	Location Location `json:"location"`
	NewText  string   `json:"new_text"`
}

// Suggestion is human-readable remediation guidance plus an optional
// literal replacement a downstream tool could apply.
type Suggestion struct {
	Message     string       `json:"message"`
	Replacement *Replacement `json:"replacement,omitempty"`
}

// Label attaches explanatory text to a secondary location within a Finding.
type Label struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

// Finding is an immutable report of one rule-violation site.
type Finding struct {
	Code       string      `json:"code"`
	RuleName   string      `json:"rule_name"`
	Severity   Severity    `json:"severity"`
	Location   Location    `json:"location"`
	Message    string      `json:"message"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	Labels     []Label     `json:"labels,omitempty"`
	DocRef     string      `json:"doc_ref,omitempty"`
}
