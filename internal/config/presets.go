package config

import "github.com/oxhq/archlint/internal/types"

// Preset is a built-in rule bundle selected by the `preset` key.
type Preset struct {
	// Enabled, when non-nil, is the full set of rule names this preset
	// turns on; every rule not listed is disabled. A nil set means "every
	// built-in rule's own default applies".
	Enabled map[string]bool
	// MinSeverity bumps any rule whose default severity is below this
	// floor up to it; it never lowers a rule's severity.
	MinSeverity types.Severity
}

// Presets are the three built-in bundles: recommended (defaults as
// shipped), strict (every built-in enabled, warnings promoted to errors),
// minimal (only the two rules that guard against outright crashes).
var Presets = map[string]Preset{
	"recommended": {},
	"strict": {
		MinSeverity: types.SeverityError,
	},
	"minimal": {
		Enabled: map[string]bool{
			"no-unwrap-expect": true,
			"no-panic-in-lib":  true,
		},
	},
}

// ResolvePreset returns the named preset, or the zero-value (no-op) preset for
// an unrecognized or empty name.
func ResolvePreset(name string) Preset {
	return Presets[name]
}
