// Package selection exposes the selection optimizer and ignore-list
// parser as a public API.
//
// A selected subset of the module-path universe compresses into a
// literal+regex rule list, renders as ignore-list text, and resolves
// back to the identical set:
//
//	opt := selection.Optimize(selected, universe)
//	text := selection.EmitIgnoreList(opt.Rules)
//	back := selection.Resolve(text, universe) // == selected
package selection

import (
	"github.com/float16-cloud/llm-compressor-graph/internal/selection"
)

// RegexPrefix marks a rule as a regular expression rather than a
// literal module path.
const RegexPrefix = selection.RegexPrefix

// Optimized holds the explicit and the compressed form of a selection.
type Optimized = selection.Optimized

// Optimize compresses the selected paths into a literal+regex rule
// list against the universe of all selectable paths.
func Optimize(selected, universe []string) Optimized {
	return selection.Optimize(selected, universe)
}

// Resolve parses previously emitted ignore-list text back into
// concrete module paths from the universe.
func Resolve(text string, universe []string) []string {
	return selection.Resolve(text, universe)
}

// Reconcile drops selected paths that are no longer in the universe.
func Reconcile(selected, universe []string) []string {
	return selection.Reconcile(selected, universe)
}

// EmitIgnoreList renders rules in the ignore=[...] text form.
func EmitIgnoreList(rules []string) string {
	return selection.EmitIgnoreList(rules)
}
