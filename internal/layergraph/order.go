package layergraph

import (
	"sort"
	"strings"
)

// Forward-pass priorities, scaled by ten so the per-layer internals
// (norm -> attention -> norm -> mlp) fit between the layer containers
// and the final norm.
const (
	prioEmbedding    = 0
	prioVision       = 10
	prioConnector    = 20
	prioBackbone     = 30
	prioLayerGroup   = 40
	prioPreNorm      = 50
	prioAttention    = 51
	prioPostNorm     = 52
	prioMLP          = 53
	prioFinalNorm    = 60
	prioHead         = 70
	prioUnclassified = 990
)

var (
	connectorAliases = map[string]bool{
		"merger":                true,
		"connector":             true,
		"projector":             true,
		"multi_modal_projector": true,
		"deepstack":             true,
	}

	backboneAliases = map[string]bool{
		"language_model": true,
		"model":          true,
		"transformer":    true,
	}

	layerGroupAliases = map[string]bool{
		"layers":  true,
		"blocks":  true,
		"h":       true,
		"encoder": true,
	}

	preNormAliases = map[string]bool{
		"input_layernorm": true,
		"layer_norm1":     true,
	}

	postNormAliases = map[string]bool{
		"post_attention_layernorm": true,
		"layer_norm2":              true,
	}

	finalNormAliases = map[string]bool{
		"norm":             true,
		"ln_f":             true,
		"final_layer_norm": true,
		"final_layernorm":  true,
	}
)

// forwardPriority maps a segment name to its position in a canonical
// forward pass. Exact per-layer norm aliases are resolved before the
// attention substring check, mirroring the classifier's ordering.
func forwardPriority(segment string) int {
	seg := strings.ToLower(segment)

	switch {
	case strings.Contains(seg, "embed"), embeddingAliases[seg]:
		return prioEmbedding
	case containsAny(seg, visionSubstrings):
		return prioVision
	case connectorAliases[seg]:
		return prioConnector
	case backboneAliases[seg]:
		return prioBackbone
	case layerGroupAliases[seg]:
		return prioLayerGroup
	}
	if _, ok := decimalIndex(seg); ok {
		return prioLayerGroup
	}

	switch {
	case preNormAliases[seg]:
		return prioPreNorm
	case postNormAliases[seg]:
		return prioPostNorm
	case containsAny(seg, attnSubstrings):
		return prioAttention
	case strings.Contains(seg, "mlp"):
		return prioMLP
	case finalNormAliases[seg]:
		return prioFinalNorm
	case headAliases[seg]:
		return prioHead
	}

	return prioUnclassified
}

// ReorderForward rebuilds the tree with every sibling list stably
// sorted into forward-pass order. Node set, shapes, roles and counts
// are unchanged; applying the pass twice yields the same order.
func ReorderForward(node *LayerNode) *LayerNode {
	children := make([]*LayerNode, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, ReorderForward(child))
	}

	sort.SliceStable(children, func(i, j int) bool {
		return forwardPriority(children[i].Name) < forwardPriority(children[j].Name)
	})

	out := *node
	out.Children = children
	return &out
}
