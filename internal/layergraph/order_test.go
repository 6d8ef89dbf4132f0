package layergraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorderForward_LayerInternals(t *testing.T) {
	root := BuildTreeFromPaths([]string{
		"model.layers.0.mlp",
		"model.layers.0.self_attn",
		"model.layers.0.input_layernorm",
		"model.layers.0.post_attention_layernorm",
	})

	ordered := ReorderForward(root)
	layer := findChild(t, findChild(t, findChild(t, ordered, "model"), "layers"), "0")
	assert.Equal(t,
		[]string{"input_layernorm", "self_attn", "post_attention_layernorm", "mlp"},
		childNames(layer))
}

func TestReorderForward_TopLevel(t *testing.T) {
	root := BuildTreeFromPaths([]string{
		"lm_head",
		"model.embed_tokens",
		"model.layers.0.mlp",
		"model.norm",
		"visual.patch_embed",
	})

	ordered := ReorderForward(root)
	// visual (vision, 1) before model (backbone, 3) before lm_head (head, 7).
	assert.Equal(t, []string{"visual", "model", "lm_head"}, childNames(ordered))

	model := findChild(t, ordered, "model")
	assert.Equal(t, []string{"embed_tokens", "layers", "norm"}, childNames(model))
}

func TestReorderForward_Idempotent(t *testing.T) {
	root := BuildTreeFromPaths([]string{
		"model.layers.0.mlp",
		"model.layers.0.self_attn",
		"model.layers.0.input_layernorm",
		"model.layers.1.mlp",
		"model.layers.1.self_attn",
		"model.norm",
		"model.embed_tokens",
		"lm_head",
	})

	once := ReorderForward(root)
	twice := ReorderForward(once)
	assert.Equal(t, Universe(once), Universe(twice))
	assertSameShape(t, once, twice)
}

func TestReorderForward_PreservesNodeSet(t *testing.T) {
	root := BuildTreeFromPaths([]string{
		"model.layers.0.self_attn.q_proj",
		"model.layers.0.mlp.down_proj",
		"model.norm",
	})

	ordered := ReorderForward(root)
	assert.ElementsMatch(t, Universe(root), Universe(ordered))
}

func assertSameShape(t *testing.T, a, b *LayerNode) {
	t.Helper()
	assert.Equal(t, a.Path, b.Path)
	assert.Equal(t, a.Role, b.Role)
	assert.Equal(t, childNames(a), childNames(b))
	for i := range a.Children {
		assertSameShape(t, a.Children[i], b.Children[i])
	}
}
