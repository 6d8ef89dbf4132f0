package layergraph

import (
	"fmt"
	"strings"
)

// RenderTree formats the tree as an indented listing for terminal
// display, one node per line with its role tag and, when withCounts is
// set, a human-readable element count. The root itself (empty path) is
// not printed.
func RenderTree(root *LayerNode, withCounts bool) string {
	var b strings.Builder
	for _, child := range root.Children {
		renderNode(&b, child, 0, withCounts)
	}
	return b.String()
}

func renderNode(b *strings.Builder, node *LayerNode, depth int, withCounts bool) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(node.Name)
	fmt.Fprintf(b, " [%s]", node.Role)
	if withCounts && node.Count > 0 {
		fmt.Fprintf(b, " %s", humanCount(node.Count))
	}
	b.WriteByte('\n')
	for _, child := range node.Children {
		renderNode(b, child, depth+1, withCounts)
	}
}

// humanCount renders an element count as 1.2K / 3.4M / 5.6B.
func humanCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return fmt.Sprintf("%d", n)
	}
}
