package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/float16-cloud/llm-compressor-graph/internal/selection"
)

func TestEmit_QuantizationModifier(t *testing.T) {
	cfg := Config{Modifier: "GPTQModifier", Scheme: "W4A16", KVCache: KVCacheNone}
	out := Emit(cfg, []string{"lm_head"})

	assert.True(t, strings.HasPrefix(out, "from llmcompressor.modifiers.quantization import GPTQModifier\n"))
	assert.Contains(t, out, "recipe = GPTQModifier(\n")
	assert.Contains(t, out, "    targets=\"Linear\",\n")
	assert.Contains(t, out, "    scheme=\"W4A16\",\n")
	assert.Contains(t, out, "    ignore=[\n        \"lm_head\"\n    ],\n")
	assert.NotContains(t, out, "kv_cache_scheme")
	assert.NotContains(t, out, "--kv-cache-dtype")
}

func TestEmit_SmoothQuantImportPath(t *testing.T) {
	cfg := Config{Modifier: SmoothQuantModifier, Scheme: "W8A8"}
	out := Emit(cfg, nil)

	assert.True(t, strings.HasPrefix(out, "from llmcompressor.modifiers.smoothquant import SmoothQuantModifier\n"))
	assert.Contains(t, out, "ignore=[],\n")
}

func TestEmit_FP8TensorPreset(t *testing.T) {
	cfg := Config{Modifier: "QuantizationModifier", Scheme: "FP8", KVCache: KVCacheFP8Tensor}
	out := Emit(cfg, []string{"lm_head"})

	assert.Contains(t, out, "    kv_cache_scheme={\n")
	assert.Contains(t, out, "\"type\": \"float\"")
	assert.Contains(t, out, "\"strategy\": \"tensor\"")
	assert.Contains(t, out, "\"dynamic\": False")
	assert.Contains(t, out, "\"symmetric\": True")
	assert.Contains(t, out, "# serve with --kv-cache-dtype fp8\n")
}

func TestEmit_FP8HeadPreset(t *testing.T) {
	out := Emit(Config{Modifier: "QuantizationModifier", Scheme: "FP8", KVCache: KVCacheFP8Head}, nil)
	assert.Contains(t, out, "\"strategy\": \"attn_head\"")
	assert.Contains(t, out, "--kv-cache-dtype fp8")
}

func TestEmit_INT8TensorPreset(t *testing.T) {
	out := Emit(Config{Modifier: "GPTQModifier", Scheme: "W8A8", KVCache: KVCacheINT8Tensor}, nil)
	assert.Contains(t, out, "\"type\": \"int\"")
	assert.Contains(t, out, "--kv-cache-dtype int8")
}

func TestEmit_IgnoreListResolvesBack(t *testing.T) {
	// The recipe body embeds the ignore list as its first bracketed
	// span, so Resolve on the whole recipe recovers the selection.
	universe := []string{"model.norm", "lm_head"}
	out := Emit(Config{Modifier: "GPTQModifier", Scheme: "W4A16"}, []string{"model.norm", "lm_head"})

	assert.Equal(t, universe, selection.Resolve(out, universe))
}

func TestParseKVCachePreset(t *testing.T) {
	assert.Equal(t, KVCacheFP8Tensor, ParseKVCachePreset("fp8-tensor"))
	assert.Equal(t, KVCacheFP8Head, ParseKVCachePreset("FP8-HEAD"))
	assert.Equal(t, KVCacheINT8Tensor, ParseKVCachePreset("int8"))
	assert.Equal(t, KVCacheNone, ParseKVCachePreset("none"))
	assert.Equal(t, KVCacheNone, ParseKVCachePreset("bogus"))
}

func TestKVCachePresetString(t *testing.T) {
	assert.Equal(t, "fp8-tensor", KVCacheFP8Tensor.String())
	assert.Equal(t, "none", KVCacheNone.String())
}
