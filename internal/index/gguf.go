package index

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// GGUF header layout (v3):
// [4 bytes: "GGUF" magic]
// [4 bytes: version]
// [8 bytes: tensor_count]
// [8 bytes: metadata_kv_count]
// [metadata key-value pairs]
// [tensor infos]
// The data section after the infos is never read.

const (
	ggufMagic    = 0x46554747 // "GGUF" in little-endian
	ggufVersion3 = 3

	// Sanity bounds for untrusted headers.
	maxGGUFString = 16 * 1024 * 1024
	maxGGUFDims   = 8
)

// ggufType enumerates GGUF metadata value types.
type ggufType uint32

const (
	ggufTypeUint8   ggufType = 0
	ggufTypeInt8    ggufType = 1
	ggufTypeUint16  ggufType = 2
	ggufTypeInt16   ggufType = 3
	ggufTypeUint32  ggufType = 4
	ggufTypeInt32   ggufType = 5
	ggufTypeFloat32 ggufType = 6
	ggufTypeBool    ggufType = 7
	ggufTypeString  ggufType = 8
	ggufTypeArray   ggufType = 9
	ggufTypeUint64  ggufType = 10
	ggufTypeInt64   ggufType = 11
	ggufTypeFloat64 ggufType = 12
)

// fixedSize returns the byte width of a fixed-width value type, or 0
// for strings and arrays.
func (t ggufType) fixedSize() int64 {
	switch t {
	case ggufTypeUint8, ggufTypeInt8, ggufTypeBool:
		return 1
	case ggufTypeUint16, ggufTypeInt16:
		return 2
	case ggufTypeUint32, ggufTypeInt32, ggufTypeFloat32:
		return 4
	case ggufTypeUint64, ggufTypeInt64, ggufTypeFloat64:
		return 8
	default:
		return 0
	}
}

// ggufReader walks a GGUF header without materializing metadata
// values: keys and values are skipped, tensor infos are collected.
type ggufReader struct {
	file *os.File
}

// ReadGGUFNames reads the header of a GGUF file and returns the name
// index (shard = file base name) with per-tensor element counts from
// the dimension products. Metadata values, including arrays, are
// skipped by length.
func ReadGGUFNames(path string) (*WeightIndex, map[string]int64, error) {
	//nolint:gosec // G304: checkpoint path comes from user input, which is expected
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	r := &ggufReader{file: file}

	var magic, version uint32
	if err := binary.Read(file, binary.LittleEndian, &magic); err != nil {
		return nil, nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != ggufMagic {
		return nil, nil, fmt.Errorf("invalid GGUF magic: 0x%X (expected 0x%X)", magic, uint32(ggufMagic))
	}
	if err := binary.Read(file, binary.LittleEndian, &version); err != nil {
		return nil, nil, fmt.Errorf("failed to read version: %w", err)
	}
	if version != ggufVersion3 {
		return nil, nil, fmt.Errorf("unsupported GGUF version: %d (only v3 supported)", version)
	}

	var tensorCount, kvCount uint64
	if err := binary.Read(file, binary.LittleEndian, &tensorCount); err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor count: %w", err)
	}
	if err := binary.Read(file, binary.LittleEndian, &kvCount); err != nil {
		return nil, nil, fmt.Errorf("failed to read metadata count: %w", err)
	}

	for i := uint64(0); i < kvCount; i++ {
		if err := r.skipMetadataKV(); err != nil {
			return nil, nil, fmt.Errorf("failed to skip metadata[%d]: %w", i, err)
		}
	}

	shard := filepath.Base(path)
	mapping := make(map[string]string, tensorCount)
	counts := make(map[string]int64, tensorCount)
	for i := uint64(0); i < tensorCount; i++ {
		name, elements, err := r.readTensorInfo()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read tensor info[%d]: %w", i, err)
		}
		mapping[name] = shard
		counts[name] = elements
	}

	return &WeightIndex{Mapping: mapping}, counts, nil
}

// readString reads a GGUF string (uint64 length + UTF-8 bytes).
func (r *ggufReader) readString() (string, error) {
	var length uint64
	if err := binary.Read(r.file, binary.LittleEndian, &length); err != nil {
		return "", err
	}
	if length > maxGGUFString {
		return "", fmt.Errorf("string length too large: %d", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.file, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// skipMetadataKV reads and discards one key-value pair.
func (r *ggufReader) skipMetadataKV() error {
	if _, err := r.readString(); err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}
	var valueType ggufType
	if err := binary.Read(r.file, binary.LittleEndian, &valueType); err != nil {
		return fmt.Errorf("failed to read value type: %w", err)
	}
	return r.skipValue(valueType)
}

// skipValue advances past a single metadata value of the given type.
// Arrays are skipped element by element since string elements have
// variable length.
func (r *ggufReader) skipValue(valueType ggufType) error {
	switch valueType {
	case ggufTypeString:
		_, err := r.readString()
		return err
	case ggufTypeArray:
		var elemType ggufType
		if err := binary.Read(r.file, binary.LittleEndian, &elemType); err != nil {
			return fmt.Errorf("failed to read array element type: %w", err)
		}
		var length uint64
		if err := binary.Read(r.file, binary.LittleEndian, &length); err != nil {
			return fmt.Errorf("failed to read array length: %w", err)
		}
		if size := elemType.fixedSize(); size > 0 {
			_, err := r.file.Seek(size*int64(length), io.SeekCurrent) //nolint:gosec // G115: bounded by maxGGUFString checks upstream
			return err
		}
		for i := uint64(0); i < length; i++ {
			if err := r.skipValue(elemType); err != nil {
				return fmt.Errorf("failed to skip array element %d: %w", i, err)
			}
		}
		return nil
	default:
		size := valueType.fixedSize()
		if size == 0 {
			return fmt.Errorf("unknown value type: %d", valueType)
		}
		_, err := r.file.Seek(size, io.SeekCurrent)
		return err
	}
}

// readTensorInfo reads one tensor info and returns the name and the
// element count (product of dims).
func (r *ggufReader) readTensorInfo() (string, int64, error) {
	name, err := r.readString()
	if err != nil {
		return "", 0, fmt.Errorf("failed to read tensor name: %w", err)
	}

	var nDims uint32
	if err := binary.Read(r.file, binary.LittleEndian, &nDims); err != nil {
		return "", 0, fmt.Errorf("failed to read n_dims: %w", err)
	}
	if nDims > maxGGUFDims {
		return "", 0, fmt.Errorf("implausible dimension count: %d", nDims)
	}

	elements := int64(1)
	for i := uint32(0); i < nDims; i++ {
		var dim uint64
		if err := binary.Read(r.file, binary.LittleEndian, &dim); err != nil {
			return "", 0, fmt.Errorf("failed to read dim[%d]: %w", i, err)
		}
		elements *= int64(dim) //nolint:gosec // G115: dims of real checkpoints fit int64
	}

	// dtype and data offset, unused for the index.
	var dtype uint32
	if err := binary.Read(r.file, binary.LittleEndian, &dtype); err != nil {
		return "", 0, fmt.Errorf("failed to read dtype: %w", err)
	}
	var offset uint64
	if err := binary.Read(r.file, binary.LittleEndian, &offset); err != nil {
		return "", 0, fmt.Errorf("failed to read offset: %w", err)
	}

	return name, elements, nil
}
