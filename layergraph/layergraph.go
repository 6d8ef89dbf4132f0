// Package layergraph exposes the module-tree core as a public API.
//
// It wraps the internal implementation and re-exports the types and
// passes needed to turn a checkpoint's tensor names into a navigable,
// forward-pass-ordered module tree:
//
//	tree := layergraph.BuildTree(names)
//	tree = layergraph.ReorderForward(tree)
//	tree = layergraph.AttachCounts(tree, counts)
//	universe := layergraph.Universe(tree)
package layergraph

import (
	"github.com/float16-cloud/llm-compressor-graph/internal/layergraph"
)

// Role is the semantic category assigned to a module node.
type Role = layergraph.Role

// Module roles.
const (
	RoleGroup     Role = layergraph.RoleGroup
	RoleEmbedding Role = layergraph.RoleEmbedding
	RoleAttention Role = layergraph.RoleAttention
	RoleMLP       Role = layergraph.RoleMLP
	RoleNorm      Role = layergraph.RoleNorm
	RoleHead      Role = layergraph.RoleHead
	RoleVision    Role = layergraph.RoleVision
)

// LayerNode is one node of the module tree.
type LayerNode = layergraph.LayerNode

// NormalizeTensorName strips the first matching weight suffix from a
// tensor name, yielding the owning module path.
func NormalizeTensorName(name string) string {
	return layergraph.NormalizeTensorName(name)
}

// Classify assigns a semantic role to a module segment given its full
// path.
func Classify(segment, fullPath string) Role {
	return layergraph.Classify(segment, fullPath)
}

// BuildTree derives the module tree from raw tensor names.
func BuildTree(names []string) *LayerNode {
	return layergraph.BuildTree(names)
}

// ReorderForward rebuilds the tree in canonical forward-pass order.
func ReorderForward(root *LayerNode) *LayerNode {
	return layergraph.ReorderForward(root)
}

// AttachCounts rebuilds the tree with per-module element counts summed
// bottom-up from a raw tensor-name count map.
func AttachCounts(root *LayerNode, counts map[string]int64) *LayerNode {
	return layergraph.AttachCounts(root, counts)
}

// Universe returns the full path of every selectable leaf in tree
// order.
func Universe(root *LayerNode) []string {
	return layergraph.Universe(root)
}

// LeafCounts returns the attached count of every selectable leaf,
// keyed by full path.
func LeafCounts(root *LayerNode) map[string]int64 {
	return layergraph.LeafCounts(root)
}
