package layergraph

import (
	"sort"
	"strconv"
)

// LayerNode is one node of the module tree. ID equals the full dotted
// path and is stable across reordering and count-attachment passes.
// Children hold the authoritative display order; Selectable marks a
// childless node backed by at least one real tensor. Count is the
// attached element count, zero when no count map has been applied.
type LayerNode struct {
	ID         string
	Name       string
	Path       string
	Role       Role
	Children   []*LayerNode
	Selectable bool
	Count      int64
}

// BuildTree derives the module tree from raw tensor names: names are
// normalized to module paths, deduplicated, sorted, loaded into a trie
// and materialized. Sibling runs of pure-decimal segments are collapsed
// into numeric order after all other siblings.
func BuildTree(names []string) *LayerNode {
	return BuildTreeFromPaths(ModulePaths(names))
}

// BuildTreeFromPaths builds the tree from already-normalized,
// deduplicated module paths.
func BuildTreeFromPaths(paths []string) *LayerNode {
	trie := buildTrie(paths)
	root := materialize("", trie)
	return collapseNumbered(root)
}

// materialize converts a trie node into a LayerNode, children first.
// A node is selectable only when it is a path terminus with no
// children; a module that appears both as a terminus and as a parent of
// sub-tensors is not directly selectable.
func materialize(segment string, node *trieNode) *LayerNode {
	children := make([]*LayerNode, 0, len(node.order))
	for _, childSegment := range node.order {
		children = append(children, materialize(childSegment, node.children[childSegment]))
	}

	return &LayerNode{
		ID:         node.path,
		Name:       segment,
		Path:       node.path,
		Role:       Classify(segment, node.path),
		Children:   children,
		Selectable: node.terminus && len(children) == 0,
	}
}

// collapseNumbered rebuilds the tree with every run of pure-decimal
// siblings sorted numerically and moved after the non-numbered
// siblings. Node identity, path and role are untouched; only sibling
// order changes. The pass recurses into every child regardless of
// whether its own level was numbered.
func collapseNumbered(node *LayerNode) *LayerNode {
	plain := make([]*LayerNode, 0, len(node.Children))
	numbered := make([]*LayerNode, 0, len(node.Children))
	for _, child := range node.Children {
		if _, ok := decimalIndex(child.Name); ok {
			numbered = append(numbered, child)
		} else {
			plain = append(plain, child)
		}
	}

	sort.SliceStable(numbered, func(i, j int) bool {
		a, _ := decimalIndex(numbered[i].Name)
		b, _ := decimalIndex(numbered[j].Name)
		return a < b
	})

	children := make([]*LayerNode, 0, len(node.Children))
	for _, child := range append(plain, numbered...) {
		children = append(children, collapseNumbered(child))
	}

	out := *node
	out.Children = children
	return &out
}

// decimalIndex reports whether the segment is a pure non-negative
// decimal integer and returns its value.
func decimalIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return n, true
}
