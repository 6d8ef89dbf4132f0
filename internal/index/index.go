package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WeightIndex maps every tensor name to the shard file holding it.
type WeightIndex struct {
	Mapping    map[string]string
	TotalBytes int64
}

// Names returns all tensor names in the index, unsorted.
func (w *WeightIndex) Names() []string {
	names := make([]string, 0, len(w.Mapping))
	for name := range w.Mapping {
		names = append(names, name)
	}
	return names
}

// weightIndexJSON is the wire shape of model.safetensors.index.json.
type weightIndexJSON struct {
	Metadata struct {
		TotalSize int64 `json:"total_size"`
	} `json:"metadata"`
	WeightMap map[string]string `json:"weight_map"`
}

// LoadWeightIndex parses a model.safetensors.index.json file.
func LoadWeightIndex(path string) (*WeightIndex, error) {
	//nolint:gosec // G304: index path comes from user input, which is expected
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var raw weightIndexJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse index JSON: %w", err)
	}
	if len(raw.WeightMap) == 0 {
		return nil, fmt.Errorf("index has no weight_map entries")
	}

	return &WeightIndex{
		Mapping:    raw.WeightMap,
		TotalBytes: raw.Metadata.TotalSize,
	}, nil
}

// Open reads a checkpoint index from path, auto-detecting the source
// kind by extension. Supports .json (safetensors index), .safetensors
// (single-file header) and .gguf. The count map is nil for index.json
// sources, which carry no shape information.
func Open(path string) (*WeightIndex, map[string]int64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		idx, err := LoadWeightIndex(path)
		return idx, nil, err
	case ".safetensors":
		return ReadSafetensorsHeader(path)
	case ".gguf":
		return ReadGGUFNames(path)
	default:
		return nil, nil, fmt.Errorf("unsupported index format: %s (expected .json, .safetensors or .gguf)", path)
	}
}
