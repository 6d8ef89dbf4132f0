// Package index supplies the tensor name universe the layer graph is
// built from. It reads checkpoint metadata only, never tensor data:
//
//   - model.safetensors.index.json weight maps (sharded checkpoints)
//   - the JSON header of a single .safetensors file
//   - the header of a GGUF file (metadata and tensor infos)
//   - a synthetic llama-style namespace generated from an architecture
//     config, for when no real checkpoint index exists
//
// Each source yields a WeightIndex (tensor name -> shard file) and,
// when shapes are available, a per-tensor element count map.
package index
