package layergraph

import (
	"sort"
	"strings"
)

// DefaultWeightSuffixes lists the known trailing weight-tensor suffixes,
// checked in order. The first match is stripped; the list covers plain
// weights, quantization scales/zero-points and packed GPTQ/AWQ tensors.
var DefaultWeightSuffixes = []string{
	".weight_scale",
	".weight_zero_point",
	".input_scale",
	".output_scale",
	".weight",
	".bias",
	".scales",
	".qweight",
	".qzeros",
	".g_idx",
}

// NormalizeTensorName strips the first matching weight suffix from a
// tensor name, yielding the owning module path. Names without a known
// suffix are returned unchanged.
func NormalizeTensorName(name string) string {
	return StripSuffix(name, DefaultWeightSuffixes)
}

// StripSuffix removes the first suffix in the list that matches name.
func StripSuffix(name string, suffixes []string) string {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return strings.TrimSuffix(name, s)
		}
	}
	return name
}

// ModulePaths normalizes every tensor name, deduplicates the results and
// returns them sorted. Extra suffixes, when given, are checked before the
// defaults.
func ModulePaths(names []string, extraSuffixes ...string) []string {
	suffixes := DefaultWeightSuffixes
	if len(extraSuffixes) > 0 {
		suffixes = append(append([]string{}, extraSuffixes...), DefaultWeightSuffixes...)
	}

	seen := make(map[string]struct{}, len(names))
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := StripSuffix(name, suffixes)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	sort.Strings(paths)
	return paths
}
