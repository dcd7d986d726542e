package builtin

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlint/internal/rule"
	"github.com/oxhq/archlint/internal/rustsyntax"
	"github.com/oxhq/archlint/internal/types"
)

// HandlerComplexity is AL004: flags handler-shaped functions, matches and
// enums that exceed a size budget — a proxy for untested branching sprawl
// in exactly the code that routes messages/events/commands.
type HandlerComplexity struct {
	// FuncLineBudget is the max body line count for a handler-prefixed
	// function before it is flagged. Zero uses the default of 60.
	FuncLineBudget int
	// MatchArmBudget is the max arm count for any match expression.
	// Zero uses the default of 12.
	MatchArmBudget int
	// EnumVariantBudget is the max variant count for an action-named enum.
	// Zero uses the default of 12.
	EnumVariantBudget int
}

var handlerPrefixes = []string{"handle_", "process_", "on_", "update"}

var actionWords = []string{"Action", "Message", "Msg", "Event", "Command", "Cmd"}

const (
	defaultFuncLineBudget    = 60
	defaultMatchArmBudget    = 12
	defaultEnumVariantBudget = 12
)

func (al HandlerComplexity) Identity() rule.Identity {
	return rule.Identity{
		Code:            "AL004",
		Name:            "handler-complexity",
		Description:     "Handler-shaped functions, matches and action enums should stay within a size budget.",
		DefaultSeverity: types.SeverityWarning,
		RequiresReason:  rule.ReasonRequired(types.SeverityWarning),
	}
}

func (al HandlerComplexity) funcBudget() int {
	if al.FuncLineBudget > 0 {
		return al.FuncLineBudget
	}
	return defaultFuncLineBudget
}

func (al HandlerComplexity) armBudget() int {
	if al.MatchArmBudget > 0 {
		return al.MatchArmBudget
	}
	return defaultMatchArmBudget
}

func (al HandlerComplexity) variantBudget() int {
	if al.EnumVariantBudget > 0 {
		return al.EnumVariantBudget
	}
	return defaultEnumVariantBudget
}

func (al HandlerComplexity) CheckFile(fc types.FileContext, tree *rustsyntax.Tree) []types.Finding {
	if tree == nil || fc.IsTest {
		return nil
	}
	id := al.Identity()
	r := newReporter(id, tree)
	var out []types.Finding

	for _, fn := range rustsyntax.FindAll(tree.Root, "function_item") {
		name := tree.ItemName(fn)
		if !hasHandlerPrefix(name) {
			continue
		}
		body := fn.ChildByFieldName("body")
		if body == nil {
			continue
		}
		start, end := tree.LineSpan(body)
		lines := end - start + 1
		if lines > al.funcBudget() {
			out = append(out, r.at(fn, "handler function '"+name+"' spans "+itoa(lines)+" lines, over the budget of "+itoa(al.funcBudget()), &types.Suggestion{
				Message: "extract sub-handlers or helper functions to shrink this function",
			})...)
		}
	}

	for _, me := range rustsyntax.FindAll(tree.Root, "match_expression") {
		body := me.ChildByFieldName("body")
		if body == nil {
			continue
		}
		arms := countArms(body)
		if arms > al.armBudget() {
			out = append(out, r.at(me, "match expression has "+itoa(arms)+" arms, over the budget of "+itoa(al.armBudget()), &types.Suggestion{
				Message: "split into smaller matches or dispatch through a lookup table",
			})...)
		}
	}

	for _, kind := range []string{"enum_item"} {
		for _, en := range rustsyntax.FindAll(tree.Root, kind) {
			name := tree.ItemName(en)
			if !hasActionWord(name) {
				continue
			}
			body := en.ChildByFieldName("body")
			if body == nil {
				continue
			}
			variants := countVariants(body)
			if variants > al.variantBudget() {
				out = append(out, r.at(en, "enum '"+name+"' has "+itoa(variants)+" variants, over the budget of "+itoa(al.variantBudget()), &types.Suggestion{
					Message: "split into grouped sub-enums or a hierarchy of message types",
				})...)
			}
		}
	}
	return withFile(fc, out)
}

func hasHandlerPrefix(name string) bool {
	for _, p := range handlerPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func hasActionWord(name string) bool {
	for _, w := range actionWords {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func countArms(matchBody *sitter.Node) int {
	n := 0
	for i := 0; i < int(matchBody.ChildCount()); i++ {
		if matchBody.Child(i).Type() == "match_arm" {
			n++
		}
	}
	return n
}

func countVariants(enumBody *sitter.Node) int {
	n := 0
	for i := 0; i < int(enumBody.ChildCount()); i++ {
		switch enumBody.Child(i).Type() {
		case "enum_variant":
			n++
		}
	}
	return n
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
