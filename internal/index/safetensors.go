package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SafeTensors format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes, never read here]

// maxHeaderSize bounds the JSON header; real headers are well under this.
const maxHeaderSize = 100 * 1024 * 1024

// safetensorsInfo is the per-tensor entry of the JSON header. Only the
// shape matters for the index; dtype and offsets are carried through
// the parse but unused.
type safetensorsInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// safetensorsHeader is the JSON header with the __metadata__ entry
// split out from the tensor entries.
type safetensorsHeader struct {
	Metadata map[string]string
	Tensors  map[string]safetensorsInfo
}

// UnmarshalJSON separates __metadata__ from tensor entries, which
// share one JSON object in the safetensors header.
func (h *safetensorsHeader) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if metaRaw, ok := raw["__metadata__"]; ok {
		if err := json.Unmarshal(metaRaw, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	h.Tensors = make(map[string]safetensorsInfo, len(raw))
	for key, value := range raw {
		if key == "__metadata__" {
			continue
		}
		var info safetensorsInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", key, err)
		}
		h.Tensors[key] = info
	}
	return nil
}

// ReadSafetensorsHeader reads the header of a single .safetensors file
// and returns the name index (every tensor's shard is the file's base
// name) plus per-tensor element counts computed from the shapes. The
// data section is never read.
func ReadSafetensorsHeader(path string) (*WeightIndex, map[string]int64, error) {
	//nolint:gosec // G304: checkpoint path comes from user input, which is expected
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > maxHeaderSize {
		return nil, nil, fmt.Errorf("invalid header size: %d (too large)", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header safetensorsHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	shard := filepath.Base(path)
	mapping := make(map[string]string, len(header.Tensors))
	counts := make(map[string]int64, len(header.Tensors))
	var total int64
	for name, info := range header.Tensors {
		mapping[name] = shard
		counts[name] = elementCount(info.Shape)
		total += info.DataOffsets[1] - info.DataOffsets[0]
	}

	return &WeightIndex{Mapping: mapping, TotalBytes: total}, counts, nil
}

// elementCount is the product of the shape dims; a scalar (empty
// shape) counts as one element.
func elementCount(shape []int64) int64 {
	n := int64(1)
	for _, dim := range shape {
		n *= dim
	}
	return n
}
