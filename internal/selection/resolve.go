package selection

import (
	"regexp"
	"strings"
)

var quotedItem = regexp.MustCompile(`"([^"]*)"`)

// Resolve parses previously emitted (and possibly hand-edited)
// ignore-list text back into concrete module paths. The first [...]
// span of the text is scanned for double-quoted items; re:-prefixed
// items are compiled as regular expressions and expand to every
// universe path they fully match, other items are kept as literals
// only when present in the universe. Invalid patterns and stale
// literals contribute nothing. The result is deduplicated and
// order-stable: universe order for pattern hits, input order for
// literals.
func Resolve(text string, universe []string) []string {
	items := extractItems(text)

	inUniverse := make(map[string]bool, len(universe))
	for _, path := range universe {
		inUniverse[path] = true
	}

	seen := make(map[string]bool)
	var resolved []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			resolved = append(resolved, path)
		}
	}

	for _, item := range items {
		if pattern, ok := strings.CutPrefix(item, RegexPrefix); ok {
			re, err := regexp.Compile("^(?:" + pattern + ")$")
			if err != nil {
				continue // invalid pattern, skip
			}
			for _, path := range universe {
				if re.MatchString(path) {
					add(path)
				}
			}
			continue
		}
		if inUniverse[item] {
			add(item)
		}
	}

	return resolved
}

// extractItems returns every double-quoted string inside the first
// bracketed span of the text. Newlines inside the span are allowed;
// text without a bracket pair yields nothing.
func extractItems(text string) []string {
	open := strings.Index(text, "[")
	if open < 0 {
		return nil
	}
	end := strings.Index(text[open:], "]")
	if end < 0 {
		return nil
	}
	span := text[open : open+end+1]

	matches := quotedItem.FindAllStringSubmatch(span, -1)
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		items = append(items, m[1])
	}
	return items
}
