package index

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestGGUFFile writes a header-only GGUF v3 file with metadata
// covering the skip paths (string, scalar, fixed-width array and
// string array) and two tensor infos.
func createTestGGUFFile(t *testing.T, path string) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	write := func(v interface{}) {
		require.NoError(t, binary.Write(file, binary.LittleEndian, v))
	}
	writeString := func(s string) {
		write(uint64(len(s)))
		_, err := file.WriteString(s)
		require.NoError(t, err)
	}

	write(uint32(ggufMagic))
	write(uint32(ggufVersion3))
	write(uint64(2)) // tensor count
	write(uint64(4)) // metadata count

	// general.architecture = "llama"
	writeString("general.architecture")
	write(uint32(ggufTypeString))
	writeString("llama")

	// llama.block_count = 2
	writeString("llama.block_count")
	write(uint32(ggufTypeUint32))
	write(uint32(2))

	// tokenizer.ggml.token_type = [1, 2, 3] (int32 array)
	writeString("tokenizer.ggml.token_type")
	write(uint32(ggufTypeArray))
	write(uint32(ggufTypeInt32))
	write(uint64(3))
	for _, v := range []int32{1, 2, 3} {
		write(v)
	}

	// tokenizer.ggml.tokens = ["a", "bc"] (string array)
	writeString("tokenizer.ggml.tokens")
	write(uint32(ggufTypeArray))
	write(uint32(ggufTypeString))
	write(uint64(2))
	writeString("a")
	writeString("bc")

	// Tensor 1: blk.0.attn_q.weight [64, 64] F32
	writeString("blk.0.attn_q.weight")
	write(uint32(2))
	write(uint64(64))
	write(uint64(64))
	write(uint32(0)) // dtype F32
	write(uint64(0)) // offset

	// Tensor 2: output_norm.weight [64] F32
	writeString("output_norm.weight")
	write(uint32(1))
	write(uint64(64))
	write(uint32(0))
	write(uint64(64 * 64 * 4))
}

func TestReadGGUFNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gguf")
	createTestGGUFFile(t, path)

	idx, counts, err := ReadGGUFNames(path)
	require.NoError(t, err)

	assert.Len(t, idx.Mapping, 2)
	assert.Equal(t, "model.gguf", idx.Mapping["blk.0.attn_q.weight"])
	assert.Equal(t, int64(4096), counts["blk.0.attn_q.weight"])
	assert.Equal(t, int64(64), counts["output_norm.weight"])
}

func TestReadGGUFNames_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gguf")
	require.NoError(t, os.WriteFile(path, []byte("NOTGGUFDATA0000000000000"), 0o600))

	_, _, err := ReadGGUFNames(path)
	assert.Error(t, err)
}

func TestReadGGUFNames_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v2.gguf")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(file, binary.LittleEndian, uint32(ggufMagic)))
	require.NoError(t, binary.Write(file, binary.LittleEndian, uint32(2)))
	require.NoError(t, file.Close())

	_, _, err = ReadGGUFNames(path)
	assert.Error(t, err)
}

func TestReadGGUFNames_TruncatedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.gguf")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(file, binary.LittleEndian, uint32(ggufMagic)))
	require.NoError(t, binary.Write(file, binary.LittleEndian, uint32(ggufVersion3)))
	require.NoError(t, binary.Write(file, binary.LittleEndian, uint64(5))) // claims 5 tensors
	require.NoError(t, file.Close())

	_, _, err = ReadGGUFNames(path)
	assert.Error(t, err)
}
