// Package recipe renders a selection as a ready-to-paste llmcompressor
// oneshot recipe: the modifier import, its instantiation with the
// ignore list, and an optional KV-cache quantization scheme chosen
// from fixed presets.
package recipe
