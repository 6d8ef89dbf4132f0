package layergraph

// AttachCounts rebuilds the tree with per-module element counts. The
// count map is keyed by raw tensor name; keys are normalized to module
// paths and summed per module, since one module may own several
// suffixed tensors (.weight plus .bias and quantization scales). Leaves
// absent from the map get zero; every non-leaf gets the sum of its
// children. The input tree is never mutated, and a nil or partial map
// degrades to zeros rather than failing.
func AttachCounts(root *LayerNode, counts map[string]int64) *LayerNode {
	perModule := make(map[string]int64, len(counts))
	for name, n := range counts {
		perModule[NormalizeTensorName(name)] += n
	}
	return attachCounts(root, perModule)
}

func attachCounts(node *LayerNode, perModule map[string]int64) *LayerNode {
	out := *node
	if len(node.Children) == 0 {
		out.Count = perModule[node.Path]
		return &out
	}

	children := make([]*LayerNode, 0, len(node.Children))
	var total int64
	for _, child := range node.Children {
		c := attachCounts(child, perModule)
		total += c.Count
		children = append(children, c)
	}
	out.Children = children
	out.Count = total
	return &out
}

// LeafCounts walks the tree and returns the attached count of every
// selectable leaf, keyed by full path.
func LeafCounts(root *LayerNode) map[string]int64 {
	counts := make(map[string]int64)
	walkLeaves(root, func(n *LayerNode) {
		counts[n.Path] = n.Count
	})
	return counts
}

// Universe returns the full path of every selectable leaf in tree
// order. This is the universe against which selections are reconciled
// and optimized.
func Universe(root *LayerNode) []string {
	var paths []string
	walkLeaves(root, func(n *LayerNode) {
		paths = append(paths, n.Path)
	})
	return paths
}

func walkLeaves(node *LayerNode, fn func(*LayerNode)) {
	if node.Selectable {
		fn(node)
	}
	for _, child := range node.Children {
		walkLeaves(child, fn)
	}
}
