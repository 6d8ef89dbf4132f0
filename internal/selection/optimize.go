package selection

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RegexPrefix marks a rule as a regular expression rather than a
// literal module path.
const RegexPrefix = "re:"

// maxLiteralRun is the largest template group still emitted as plain
// literals; anything bigger compresses to a regex.
const maxLiteralRun = 3

// Optimized holds both forms of a selection: the explicit paths as
// given, and the compressed literal+regex rule list that resolves to
// the same set against the same universe.
type Optimized struct {
	Explicit []string
	Rules    []string
}

// template is a module path with its single decimal layer-index
// segment abstracted out.
type template struct {
	prefix string // segments before the index, dotted, may be empty
	suffix string // segments after the index, dotted, may be empty
}

type templateGroup struct {
	key        template
	indices    []string // index segments verbatim; leading zeros preserved
	universeN  int      // selectable paths in the universe sharing the template
	contiguous bool     // indices form an unbroken run; informational only
}

// splitTemplate detects the single isolated numeric segment of a path.
// Paths with zero or several numeric segments do not fit a template and
// are reported as literals. The index is kept as its original segment
// text so paths like model.layers.00.mlp reconstruct exactly.
func splitTemplate(path string) (template, string, bool) {
	segments := strings.Split(path, ".")
	found := -1
	for i, seg := range segments {
		if !decimalSegment(seg) {
			continue
		}
		if found >= 0 {
			return template{}, "", false
		}
		found = i
	}
	if found < 0 {
		return template{}, "", false
	}
	return template{
		prefix: strings.Join(segments[:found], "."),
		suffix: strings.Join(segments[found+1:], "."),
	}, segments[found], true
}

func decimalSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// digitLess orders digit strings numerically without parsing them, so
// arbitrarily long indices stay well defined and distinct spellings of
// one value ("0" before "00") keep a fixed order.
func digitLess(a, b string) bool {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		return len(ta) < len(tb)
	}
	if ta != tb {
		return ta < tb
	}
	return a < b
}

// literal reconstructs the concrete path for one index of a template.
func (t template) literal(index string) string {
	parts := make([]string, 0, 3)
	if t.prefix != "" {
		parts = append(parts, t.prefix)
	}
	parts = append(parts, index)
	if t.suffix != "" {
		parts = append(parts, t.suffix)
	}
	return strings.Join(parts, ".")
}

// pattern builds the re: rule for a template, with the index position
// filled by body (`\d+` or an alternation). Prefix and suffix are
// escaped so dots and any other metacharacters match literally.
func (t template) pattern(body string) string {
	var b strings.Builder
	b.WriteString(RegexPrefix)
	if t.prefix != "" {
		b.WriteString(regexp.QuoteMeta(t.prefix))
		b.WriteString(`\.`)
	}
	b.WriteString(body)
	if t.suffix != "" {
		b.WriteString(`\.`)
		b.WriteString(regexp.QuoteMeta(t.suffix))
	}
	return b.String()
}

// Optimize compresses the selected paths into a literal+regex rule
// list against the universe of all selectable paths.
//
// Per template group: three or fewer indices emit plain literals;
// beyond that, selecting every index the universe has for the template
// emits a single index-wildcard regex, and a partial selection emits
// one ascending index alternation.
// Contiguity of the indices is detected but deliberately does not
// change the emitted form. Paths without a single isolated numeric
// segment pass through as literals, emitted before the template
// groups; groups follow in first-seen order.
func Optimize(selected, universe []string) Optimized {
	explicit := append([]string{}, selected...)

	universeN := make(map[template]int)
	for _, path := range universe {
		if key, _, ok := splitTemplate(path); ok {
			universeN[key]++
		}
	}

	var literals []string
	var order []template
	groups := make(map[template]*templateGroup)
	for _, path := range selected {
		key, index, ok := splitTemplate(path)
		if !ok {
			literals = append(literals, path)
			continue
		}
		g, seen := groups[key]
		if !seen {
			g = &templateGroup{key: key, universeN: universeN[key]}
			groups[key] = g
			order = append(order, key)
		}
		g.indices = append(g.indices, index)
	}

	rules := append([]string{}, literals...)
	for _, key := range order {
		rules = append(rules, compressGroup(groups[key])...)
	}

	return Optimized{Explicit: explicit, Rules: rules}
}

func compressGroup(g *templateGroup) []string {
	sort.SliceStable(g.indices, func(i, j int) bool {
		return digitLess(g.indices[i], g.indices[j])
	})
	g.contiguous = isContiguous(g.indices)

	// Small groups stay literal even at full coverage; a regex for one
	// or two layers obscures more than it saves.
	if len(g.indices) <= maxLiteralRun {
		out := make([]string, 0, len(g.indices))
		for _, i := range g.indices {
			out = append(out, g.key.literal(i))
		}
		return out
	}

	// Every index of the template selected: one wildcard covers the
	// whole group and stays valid if the layer count grows.
	if len(g.indices) == g.universeN {
		return []string{g.key.pattern(`\d+`)}
	}

	return []string{g.key.pattern("(" + strings.Join(g.indices, "|") + ")")}
}

func isContiguous(sorted []string) bool {
	prev := 0
	for i, s := range sorted {
		n, err := strconv.Atoi(s)
		if err != nil {
			return false
		}
		if i > 0 && n != prev+1 {
			return false
		}
		prev = n
	}
	return true
}

// Reconcile drops selected paths that are no longer part of the
// universe, preserving selection order. Loading a different checkpoint
// shrinks a stale selection instead of erroring.
func Reconcile(selected, universe []string) []string {
	valid := make(map[string]bool, len(universe))
	for _, path := range universe {
		valid[path] = true
	}
	kept := make([]string, 0, len(selected))
	for _, path := range selected {
		if valid[path] {
			kept = append(kept, path)
		}
	}
	return kept
}
