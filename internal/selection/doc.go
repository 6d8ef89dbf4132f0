// Package selection compresses a chosen set of module paths into a
// compact rule list and resolves such lists back into concrete paths.
//
// The optimizer groups paths by their layer-index template (the shape
// prefix.N.suffix with a single decimal segment abstracted out) and
// emits, per group, either an index wildcard regex, a short run of
// literals, or an index alternation regex, whichever reproduces the
// selection with the least redundancy against the universe of all
// selectable paths. The resolver is the exact inverse: it extracts the
// quoted items of a previously emitted (possibly hand-edited)
// ignore=[...] block and expands literals and re: patterns against the
// current universe.
//
// Nothing in this package raises errors for malformed input: paths
// that do not fit a template pass through as literals, invalid regex
// items contribute nothing, and stale literals are silently dropped.
package selection
