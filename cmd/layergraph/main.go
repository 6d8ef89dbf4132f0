// Command layergraph inspects the module namespace of a model
// checkpoint and emits llmcompressor ignore lists and recipes from it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/float16-cloud/llm-compressor-graph/internal/index"
	"github.com/float16-cloud/llm-compressor-graph/internal/layergraph"
	"github.com/float16-cloud/llm-compressor-graph/internal/recipe"
	"github.com/float16-cloud/llm-compressor-graph/internal/selection"
)

func main() {
	root := &cli.Command{
		Name:  "layergraph",
		Usage: "Navigate checkpoint tensor namespaces and build quantization ignore lists",
		Commands: []*cli.Command{
			treeCmd(),
			emitCmd(),
			resolveCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadTree reads the checkpoint source and builds the forward-ordered
// tree plus the raw count map. source is an index.json, a .safetensors
// or .gguf file, or (with synthetic) a config.json.
func loadTree(source string, synthetic bool, extraSuffixes []string) (*layergraph.LayerNode, map[string]int64, error) {
	var (
		idx    *index.WeightIndex
		counts map[string]int64
		err    error
	)
	if synthetic {
		var cfg *index.ArchConfig
		cfg, err = index.LoadArchConfig(source)
		if err != nil {
			return nil, nil, err
		}
		idx = index.GenerateSyntheticIndex(cfg)
		counts = index.EstimateCounts(cfg)
	} else {
		idx, counts, err = index.Open(source)
		if err != nil {
			return nil, nil, err
		}
	}

	paths := layergraph.ModulePaths(idx.Names(), extraSuffixes...)
	tree := layergraph.BuildTreeFromPaths(paths)
	tree = layergraph.ReorderForward(tree)
	if counts != nil {
		tree = layergraph.AttachCounts(tree, counts)
	}
	return tree, counts, nil
}

func treeCmd() *cli.Command {
	var (
		configPath string
		synthetic  bool
	)
	return &cli.Command{
		Name:      "tree",
		Usage:     "Print the forward-ordered module tree of a checkpoint",
		ArgsUsage: "<index.json|model.safetensors|model.gguf>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a defaults YAML file", Destination: &configPath},
			&cli.BoolFlag{Name: "synthetic", Usage: "treat the argument as a config.json and generate a synthetic namespace", Destination: &synthetic},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("missing checkpoint source argument")
			}
			defaults, err := loadDefaults(configPath)
			if err != nil {
				return err
			}
			tree, counts, err := loadTree(c.Args().First(), synthetic, defaults.Suffixes)
			if err != nil {
				return err
			}
			fmt.Print(layergraph.RenderTree(tree, counts != nil))
			return nil
		},
	}
}

func emitCmd() *cli.Command {
	var (
		configPath string
		synthetic  bool
		selectAll  bool
		explicit   bool
		asRecipe   bool
		modifier   string
		scheme     string
		kvCache    string
	)
	return &cli.Command{
		Name:      "emit",
		Usage:     "Optimize a selection and print the ignore list or a full recipe",
		ArgsUsage: "<source> [pattern ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a defaults YAML file", Destination: &configPath},
			&cli.BoolFlag{Name: "synthetic", Usage: "treat the source as a config.json", Destination: &synthetic},
			&cli.BoolFlag{Name: "all", Usage: "select every leaf module", Destination: &selectAll},
			&cli.BoolFlag{Name: "explicit", Usage: "skip compression, print one literal per selected leaf", Destination: &explicit},
			&cli.BoolFlag{Name: "recipe", Usage: "print a full recipe instead of the bare ignore list", Destination: &asRecipe},
			&cli.StringFlag{Name: "modifier", Usage: "recipe modifier class", Destination: &modifier},
			&cli.StringFlag{Name: "scheme", Usage: "quantization scheme name", Destination: &scheme},
			&cli.StringFlag{Name: "kv-cache", Usage: "kv-cache preset: none, fp8-tensor, fp8-head, int8-tensor", Destination: &kvCache},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("missing checkpoint source argument")
			}
			defaults, err := loadDefaults(configPath)
			if err != nil {
				return err
			}
			tree, _, err := loadTree(c.Args().First(), synthetic, defaults.Suffixes)
			if err != nil {
				return err
			}
			universe := layergraph.Universe(tree)

			var selected []string
			switch {
			case selectAll:
				selected = universe
			case c.Args().Len() > 1:
				// Patterns reuse the ignore-list grammar: literals and
				// re: items, resolved against the universe.
				selected = selection.Resolve(selection.EmitIgnoreList(c.Args().Slice()[1:]), universe)
			default:
				return fmt.Errorf("nothing selected: pass patterns or --all")
			}

			opt := selection.Optimize(selected, universe)
			rules := opt.Rules
			if explicit {
				rules = opt.Explicit
			}

			if asRecipe {
				cfg := recipe.Config{
					Modifier: defaults.modifierOr(modifier),
					Scheme:   defaults.schemeOr(scheme),
					KVCache:  recipe.ParseKVCachePreset(defaults.kvCacheOr(kvCache)),
				}
				fmt.Print(recipe.Emit(cfg, rules))
				return nil
			}
			fmt.Println(selection.EmitIgnoreList(rules))
			return nil
		},
	}
}

func resolveCmd() *cli.Command {
	var (
		configPath string
		synthetic  bool
		listPath   string
	)
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve previously emitted ignore-list text against a checkpoint",
		ArgsUsage: "<source>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a defaults YAML file", Destination: &configPath},
			&cli.BoolFlag{Name: "synthetic", Usage: "treat the source as a config.json", Destination: &synthetic},
			&cli.StringFlag{Name: "list", Usage: "ignore-list file to resolve (- for stdin)", Value: "-", Destination: &listPath},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("missing checkpoint source argument")
			}
			defaults, err := loadDefaults(configPath)
			if err != nil {
				return err
			}
			tree, _, err := loadTree(c.Args().First(), synthetic, defaults.Suffixes)
			if err != nil {
				return err
			}

			var text []byte
			if listPath == "-" {
				text, err = io.ReadAll(os.Stdin)
			} else {
				text, err = os.ReadFile(listPath) //nolint:gosec // G304: list path comes from user input, which is expected
			}
			if err != nil {
				return fmt.Errorf("failed to read ignore list: %w", err)
			}

			for _, path := range selection.Resolve(string(text), layergraph.Universe(tree)) {
				fmt.Println(path)
			}
			return nil
		},
	}
}
