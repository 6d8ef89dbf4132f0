package layergraph

import "strings"

// trieNode is the construction-time prefix tree over dot-separated path
// segments. Children are keyed by the literal segment string, so two
// modules sharing a prefix always share the corresponding node. The
// insertion order of children is preserved; final sibling order is
// decided by later reordering passes.
type trieNode struct {
	children map[string]*trieNode
	order    []string // child segments in first-seen order
	path     string   // full dotted path from the root
	terminus bool     // this exact path is a module path
}

func newTrieNode(path string) *trieNode {
	return &trieNode{
		children: make(map[string]*trieNode),
		path:     path,
	}
}

// buildTrie loads a deduplicated set of module paths into a trie.
// Runs in O(total segments).
func buildTrie(paths []string) *trieNode {
	root := newTrieNode("")
	for _, path := range paths {
		if path == "" {
			continue
		}
		node := root
		full := ""
		for _, segment := range strings.Split(path, ".") {
			if full == "" {
				full = segment
			} else {
				full = full + "." + segment
			}
			child, ok := node.children[segment]
			if !ok {
				child = newTrieNode(full)
				node.children[segment] = child
				node.order = append(node.order, segment)
			}
			node = child
		}
		node.terminus = true
	}
	return root
}
