package recipe

import (
	"fmt"
	"strings"

	"github.com/float16-cloud/llm-compressor-graph/internal/selection"
)

// Modifier import locations. SmoothQuant lives in its own module; every
// other modifier is imported from the quantization module.
const (
	smoothQuantModule  = "llmcompressor.modifiers.smoothquant"
	quantizationModule = "llmcompressor.modifiers.quantization"

	// SmoothQuantModifier is the one modifier imported from
	// smoothQuantModule.
	SmoothQuantModifier = "SmoothQuantModifier"
)

// KVCachePreset selects one of the fixed kv_cache_scheme literals.
type KVCachePreset int

// KV-cache quantization presets.
const (
	KVCacheNone KVCachePreset = iota
	KVCacheFP8Tensor
	KVCacheFP8Head
	KVCacheINT8Tensor
)

// String returns the preset name as used on the CLI.
func (p KVCachePreset) String() string {
	switch p {
	case KVCacheFP8Tensor:
		return "fp8-tensor"
	case KVCacheFP8Head:
		return "fp8-head"
	case KVCacheINT8Tensor:
		return "int8-tensor"
	default:
		return "none"
	}
}

// ParseKVCachePreset maps a preset name to its value; unknown names
// fall back to KVCacheNone.
func ParseKVCachePreset(name string) KVCachePreset {
	switch strings.ToLower(name) {
	case "fp8-tensor", "fp8":
		return KVCacheFP8Tensor
	case "fp8-head":
		return KVCacheFP8Head
	case "int8-tensor", "int8":
		return KVCacheINT8Tensor
	default:
		return KVCacheNone
	}
}

// scheme returns the Python dict literal lines for the preset, without
// the kv_cache_scheme= prefix, or "" for KVCacheNone.
func (p KVCachePreset) scheme() string {
	var typ, strategy string
	switch p {
	case KVCacheFP8Tensor:
		typ, strategy = "float", "tensor"
	case KVCacheFP8Head:
		typ, strategy = "float", "attn_head"
	case KVCacheINT8Tensor:
		typ, strategy = "int", "tensor"
	default:
		return ""
	}
	return fmt.Sprintf(`{
        "num_bits": 8,
        "type": "%s",
        "strategy": "%s",
        "dynamic": False,
        "symmetric": True,
    }`, typ, strategy)
}

// loaderFlag returns the serving-time cache dtype flag implied by the
// preset, or "" when no scheme is emitted.
func (p KVCachePreset) loaderFlag() string {
	switch p {
	case KVCacheFP8Tensor, KVCacheFP8Head:
		return "fp8"
	case KVCacheINT8Tensor:
		return "int8"
	default:
		return ""
	}
}

// Config describes the recipe to emit.
type Config struct {
	Modifier string // e.g. "GPTQModifier", "QuantizationModifier"
	Scheme   string // e.g. "W4A16", "FP8_DYNAMIC"
	KVCache  KVCachePreset
}

// Emit renders the recipe code block for the given ignore rules.
func Emit(cfg Config, rules []string) string {
	module := quantizationModule
	if cfg.Modifier == SmoothQuantModifier {
		module = smoothQuantModule
	}

	var b strings.Builder
	fmt.Fprintf(&b, "from %s import %s\n\n", module, cfg.Modifier)
	fmt.Fprintf(&b, "recipe = %s(\n", cfg.Modifier)
	b.WriteString("    targets=\"Linear\",\n")
	fmt.Fprintf(&b, "    scheme=%q,\n", cfg.Scheme)
	fmt.Fprintf(&b, "    %s,\n", indentTail(selection.EmitIgnoreList(rules), "    "))
	if scheme := cfg.KVCache.scheme(); scheme != "" {
		fmt.Fprintf(&b, "    kv_cache_scheme=%s,\n", scheme)
	}
	b.WriteString(")\n")
	if flag := cfg.KVCache.loaderFlag(); flag != "" {
		fmt.Fprintf(&b, "# serve with --kv-cache-dtype %s\n", flag)
	}
	return b.String()
}

// indentTail indents every line of s after the first, so a multi-line
// block can be spliced into an already-indented position.
func indentTail(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
