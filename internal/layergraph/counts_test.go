package layergraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachCounts_SumsBottomUp(t *testing.T) {
	root := BuildTreeFromPaths([]string{
		"model.layers.0.self_attn.q_proj",
		"model.layers.0.mlp.down_proj",
	})

	counted := AttachCounts(root, map[string]int64{
		"model.layers.0.self_attn.q_proj.weight": 100,
		"model.layers.0.mlp.down_proj.weight":    250,
	})

	layer := findChild(t, findChild(t, findChild(t, counted, "model"), "layers"), "0")
	assert.Equal(t, int64(350), layer.Count)
	assert.Equal(t, int64(350), counted.Count)
}

func TestAttachCounts_MultipleTensorsPerModule(t *testing.T) {
	root := BuildTreeFromPaths([]string{"model.fc1"})

	// .weight and .bias both collapse onto model.fc1.
	counted := AttachCounts(root, map[string]int64{
		"model.fc1.weight": 120,
		"model.fc1.bias":   12,
	})

	fc1 := findChild(t, findChild(t, counted, "model"), "fc1")
	assert.Equal(t, int64(132), fc1.Count)
}

func TestAttachCounts_MissingLeavesReportZero(t *testing.T) {
	root := BuildTreeFromPaths([]string{"model.norm", "model.embed_tokens"})

	counted := AttachCounts(root, map[string]int64{"model.norm.weight": 64})

	model := findChild(t, counted, "model")
	assert.Equal(t, int64(0), findChild(t, model, "embed_tokens").Count)
	assert.Equal(t, int64(64), model.Count)
}

func TestAttachCounts_NilMap(t *testing.T) {
	root := BuildTreeFromPaths([]string{"model.norm"})
	counted := AttachCounts(root, nil)
	assert.Equal(t, int64(0), counted.Count)
}

func TestUniverse_ForwardOrder(t *testing.T) {
	names := []string{
		"model.embed_tokens.weight",
		"model.layers.0.self_attn.q_proj.weight",
		"model.layers.0.mlp.down_proj.weight",
		"model.norm.weight",
		"lm_head.weight",
	}

	tree := ReorderForward(BuildTree(names))
	assert.Equal(t, []string{
		"model.embed_tokens",
		"model.layers.0.self_attn.q_proj",
		"model.layers.0.mlp.down_proj",
		"model.norm",
		"lm_head",
	}, Universe(tree))
}

func TestUniverse_SkipsTerminusWithChildren(t *testing.T) {
	tree := BuildTreeFromPaths([]string{"a.b", "a.b.c"})
	assert.Equal(t, []string{"a.b.c"}, Universe(tree))
}

func TestLeafCounts(t *testing.T) {
	root := BuildTreeFromPaths([]string{"model.norm", "model.embed_tokens"})
	counted := AttachCounts(root, map[string]int64{
		"model.norm.weight":         64,
		"model.embed_tokens.weight": 4096,
	})

	counts := LeafCounts(counted)
	require.Len(t, counts, 2)
	assert.Equal(t, int64(64), counts["model.norm"])
	assert.Equal(t, int64(4096), counts["model.embed_tokens"])
}
