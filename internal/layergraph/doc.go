// Package layergraph turns the flat tensor-name namespace of a model
// checkpoint into a navigable module tree.
//
// The pipeline is pure data transformation over strings:
//
//	names -> module paths -> trie -> LayerNode tree -> ordered tree
//
// Every tensor name is stripped of its weight suffix (.weight, .bias, ...)
// to obtain the owning module path. The deduplicated paths are loaded into
// a prefix trie over dot-separated segments, each node is assigned a
// semantic role (embedding, attention, mlp, norm, head, vision, group) by
// an ordered classifier cascade, and the trie is materialized into a tree
// of LayerNode values. Separate passes re-sort sibling lists into
// numeric layer order and into canonical forward-pass order, and attach
// per-module element counts when a count map is available.
//
// Every tree-producing pass returns a new tree and never mutates its
// input, so multiple derived views of one checkpoint can coexist.
//
// Example:
//
//	tree := layergraph.BuildTree(tensorNames)
//	tree = layergraph.ReorderForward(tree)
//	tree = layergraph.AttachCounts(tree, counts)
//	leaves := layergraph.Universe(tree)
//
// Malformed or unrecognized names never fail the pipeline: unknown
// segments classify as RoleGroup and missing counts read as zero.
package layergraph
