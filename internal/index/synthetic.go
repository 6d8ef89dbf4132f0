package index

import (
	"encoding/json"
	"fmt"
	"os"
)

// ArchConfig is the subset of a Hugging Face config.json the synthetic
// generator and the count estimator need.
type ArchConfig struct {
	ModelType         string `json:"model_type"`
	NumHiddenLayers   int    `json:"num_hidden_layers"`
	HiddenSize        int    `json:"hidden_size"`
	IntermediateSize  int    `json:"intermediate_size"`
	NumAttentionHeads int    `json:"num_attention_heads"`
	NumKeyValueHeads  int    `json:"num_key_value_heads"`
	VocabSize         int    `json:"vocab_size"`
	TieWordEmbeddings bool   `json:"tie_word_embeddings"`
}

// LoadArchConfig parses a config.json file.
func LoadArchConfig(path string) (*ArchConfig, error) {
	//nolint:gosec // G304: config path comes from user input, which is expected
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg ArchConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if cfg.NumHiddenLayers <= 0 {
		return nil, fmt.Errorf("config has no num_hidden_layers")
	}
	if cfg.NumKeyValueHeads == 0 {
		cfg.NumKeyValueHeads = cfg.NumAttentionHeads
	}
	return &cfg, nil
}

// syntheticShard is the shard value used for generated entries; there
// is no file behind a synthetic index.
const syntheticShard = "synthetic"

// perLayerModules are the llama-style module names under each
// model.layers.{i}.
var perLayerModules = []string{
	"input_layernorm",
	"self_attn.q_proj",
	"self_attn.k_proj",
	"self_attn.v_proj",
	"self_attn.o_proj",
	"post_attention_layernorm",
	"mlp.gate_proj",
	"mlp.up_proj",
	"mlp.down_proj",
}

// GenerateSyntheticIndex produces a llama-style tensor namespace for
// an architecture config, used when no real checkpoint index exists.
// The result is shaped exactly like a real index so the rest of the
// pipeline cannot tell the difference.
func GenerateSyntheticIndex(cfg *ArchConfig) *WeightIndex {
	mapping := make(map[string]string)
	add := func(name string) { mapping[name] = syntheticShard }

	add("model.embed_tokens.weight")
	for i := 0; i < cfg.NumHiddenLayers; i++ {
		for _, mod := range perLayerModules {
			add(fmt.Sprintf("model.layers.%d.%s.weight", i, mod))
		}
	}
	add("model.norm.weight")
	if !cfg.TieWordEmbeddings {
		add("lm_head.weight")
	}

	return &WeightIndex{Mapping: mapping}
}

// EstimateCounts computes per-tensor element counts for a synthetic
// index from the architecture dimensions. Counts use the standard
// llama parameter formulas: attention projections are hidden x hidden
// (scaled by the KV-head ratio for k/v), the gated MLP is three
// hidden x intermediate matrices, norms are vectors of hidden size.
func EstimateCounts(cfg *ArchConfig) map[string]int64 {
	h := int64(cfg.HiddenSize)
	inter := int64(cfg.IntermediateSize)
	vocab := int64(cfg.VocabSize)

	kvDim := h
	if cfg.NumAttentionHeads > 0 && cfg.NumKeyValueHeads > 0 {
		kvDim = h / int64(cfg.NumAttentionHeads) * int64(cfg.NumKeyValueHeads)
	}

	perModule := map[string]int64{
		"input_layernorm":          h,
		"self_attn.q_proj":         h * h,
		"self_attn.k_proj":         h * kvDim,
		"self_attn.v_proj":         h * kvDim,
		"self_attn.o_proj":         h * h,
		"post_attention_layernorm": h,
		"mlp.gate_proj":            h * inter,
		"mlp.up_proj":              h * inter,
		"mlp.down_proj":            h * inter,
	}

	counts := make(map[string]int64)
	counts["model.embed_tokens.weight"] = vocab * h
	for i := 0; i < cfg.NumHiddenLayers; i++ {
		for mod, n := range perModule {
			counts[fmt.Sprintf("model.layers.%d.%s.weight", i, mod)] = n
		}
	}
	counts["model.norm.weight"] = h
	if !cfg.TieWordEmbeddings {
		counts["lm_head.weight"] = vocab * h
	}
	return counts
}
