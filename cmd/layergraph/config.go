package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaults is the optional YAML defaults file. Explicit flags always
// win over file values.
type defaults struct {
	Modifier string   `yaml:"modifier"`
	Scheme   string   `yaml:"scheme"`
	KVCache  string   `yaml:"kv_cache"`
	Suffixes []string `yaml:"suffixes"` // extra weight suffixes, checked before the built-ins
}

func loadDefaults(path string) (*defaults, error) {
	d := &defaults{
		Modifier: "GPTQModifier",
		Scheme:   "W4A16",
		KVCache:  "none",
	}
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: config path comes from user input, which is expected
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file: %w", err)
	}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to parse defaults file: %w", err)
	}
	return d, nil
}

func (d *defaults) modifierOr(flag string) string {
	if flag != "" {
		return flag
	}
	return d.Modifier
}

func (d *defaults) schemeOr(flag string) string {
	if flag != "" {
		return flag
	}
	return d.Scheme
}

func (d *defaults) kvCacheOr(flag string) string {
	if flag != "" {
		return flag
	}
	return d.KVCache
}
