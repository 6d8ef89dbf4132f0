package selection

import "strings"

// EmitIgnoreList renders rules in the ignore-list text form consumed
// by Resolve:
//
//	ignore=[
//	    "model.layers.0.mlp.down_proj",
//	    "re:model\.layers\.\d+\.self_attn\.q_proj"
//	]
//
// An empty rule list renders as ignore=[].
func EmitIgnoreList(rules []string) string {
	return "ignore=" + bracketList(rules, "")
}

// bracketList renders the [...] block itself, with every line indented
// by indent plus four spaces. Shared by the ignore-list and recipe
// emitters so hand-edited output stays parseable by Resolve either way.
func bracketList(items []string, indent string) string {
	if len(items) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for i, item := range items {
		b.WriteString(indent)
		b.WriteString("    \"")
		b.WriteString(item)
		b.WriteString("\"")
		if i < len(items)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("]")
	return b.String()
}
