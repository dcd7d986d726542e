package builtin

import "github.com/oxhq/archlint/internal/rule"

// All returns the fixed built-in catalog (AL001-AL013, excluding the
// reserved-but-unused AL008) with their default configuration. Callers that
// need non-default budgets or config-driven toggles (AL004's budgets,
// AL009's runtime mode, AL013's skip flags) construct those rule values
// directly and register them instead of calling All().
func All() []rule.PerFileRule {
	return []rule.PerFileRule{
		NoUnwrapExpect{},
		NoSyncIO{},
		NoErrorSwallowing{},
		HandlerComplexity{},
		RequireThiserror{},
		NewRequireTracing(),
		TracingEnvInit{},
		AsyncTraitSendCheck{SingleThreadedRuntime: false},
		PreferFromOverInto{},
		NoPanicInLib{},
		RequireDocComments{},
		NoSilentResultDrop{},
	}
}
