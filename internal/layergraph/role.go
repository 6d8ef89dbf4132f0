package layergraph

import "strings"

// Role is the semantic category assigned to a module node.
type Role int

// Module roles.
const (
	RoleGroup Role = iota
	RoleEmbedding
	RoleAttention
	RoleMLP
	RoleNorm
	RoleHead
	RoleVision
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleEmbedding:
		return "embedding"
	case RoleAttention:
		return "attention"
	case RoleMLP:
		return "mlp"
	case RoleNorm:
		return "norm"
	case RoleHead:
		return "head"
	case RoleVision:
		return "vision"
	default:
		return "group"
	}
}

// Exact-name alias sets used by the classifier cascade. All lookups are
// against lowercased segments.
var (
	embeddingAliases = map[string]bool{
		"wte": true,
		"wpe": true,
	}

	normAliases = map[string]bool{
		"ln_1":                     true,
		"ln_2":                     true,
		"ln_f":                     true,
		"final_layer_norm":         true,
		"input_layernorm":          true,
		"post_attention_layernorm": true,
		"layer_norm1":              true,
		"layer_norm2":              true,
	}

	headAliases = map[string]bool{
		"lm_head":    true,
		"score":      true,
		"classifier": true,
	}

	attnProjAliases = map[string]bool{
		"q_proj":   true,
		"k_proj":   true,
		"v_proj":   true,
		"o_proj":   true,
		"qkv_proj": true,
		"query":    true,
		"key":      true,
		"value":    true,
	}

	mlpAliases = map[string]bool{
		"gate_proj":     true,
		"up_proj":       true,
		"down_proj":     true,
		"fc1":           true,
		"fc2":           true,
		"c_fc":          true,
		"c_proj":        true,
		"gate_up_proj":  true,
		"dense_h_to_4h": true,
		"dense_4h_to_h": true,
	}

	attnSubstrings   = []string{"self_attn", "attention", "attn"}
	visionSubstrings = []string{"vision", "visual", "image_encoder", "vit", "clip"}
)

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Classify assigns a role to a module segment given its full path.
//
// The cascade order is part of the contract: norm markers are checked
// before attention because names like post_attention_layernorm contain
// the substring "attention". Attention and mlp matches on bare segments
// require corroboration from the full path or an explicit projection
// alias, so an ambiguous segment without context falls through to the
// next step instead of being mislabeled. All comparisons are
// case-insensitive.
func Classify(segment, fullPath string) Role {
	seg := strings.ToLower(segment)
	path := strings.ToLower(fullPath)

	// 1. Embeddings.
	if strings.Contains(seg, "embed") || embeddingAliases[seg] {
		return RoleEmbedding
	}

	// 2. Normalization, before attention.
	if strings.Contains(seg, "norm") || strings.Contains(seg, "layernorm") || normAliases[seg] {
		return RoleNorm
	}

	// 3. Output heads.
	if headAliases[seg] {
		return RoleHead
	}

	// 4. Attention, confirmed by path context or an explicit projection alias.
	if containsAny(seg, attnSubstrings) || attnProjAliases[seg] {
		if containsAny(path, attnSubstrings) || attnProjAliases[seg] {
			return RoleAttention
		}
	}

	// 5. MLP, confirmed analogously. c_proj is too generic to confirm on
	// its own (GPT-2 uses it inside attention as well).
	if strings.Contains(seg, "mlp") || mlpAliases[seg] {
		if strings.Contains(path, "mlp") || (mlpAliases[seg] && seg != "c_proj") {
			return RoleMLP
		}
	}

	// 6. Vision towers, matched on the full path only.
	if containsAny(path, visionSubstrings) {
		return RoleVision
	}

	return RoleGroup
}
