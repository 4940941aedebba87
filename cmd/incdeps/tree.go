package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/incdeps/internal/config"
	"github.com/standardbeagle/incdeps/internal/display"
	"github.com/standardbeagle/incdeps/internal/graph"
	"github.com/standardbeagle/incdeps/internal/resolve"
	"github.com/standardbeagle/incdeps/internal/suggest"
	"github.com/standardbeagle/incdeps/pkg/pathutil"
)

// scanEnv bundles everything a scan-based command needs.
type scanEnv struct {
	cfg   *config.Config
	paths *resolve.SearchPaths
	roots []string
}

// setupScan loads config, assembles search paths, and enumerates roots.
func setupScan(c *cli.Context) (*scanEnv, error) {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return nil, err
	}
	paths := buildSearchPaths(c, cfg)
	roots, err := rootFiles(c, cfg)
	if err != nil {
		return nil, err
	}
	return &scanEnv{cfg: cfg, paths: paths, roots: roots}, nil
}

// buildForest runs the graph builder over every root, in order.
func buildForest(env *scanEnv) (*graph.Builder, []*graph.Node) {
	builder := graph.NewBuilder(resolve.NewResolver(env.paths))
	nodes := make([]*graph.Node, 0, len(env.roots))
	for _, root := range env.roots {
		nodes = append(nodes, builder.BuildOrGet(root))
	}
	return builder, nodes
}

// printerOptions derives display options from config, wiring the suggestion
// index only when requested.
func printerOptions(env *scanEnv) display.PrinterOptions {
	options := display.PrinterOptions{
		Indent:   env.cfg.Output.Indent,
		Relative: env.cfg.Output.Relative,
		Root:     env.cfg.Project.Root,
	}
	if env.cfg.Output.Suggest {
		index := suggest.NewIndex(env.paths.Dirs())
		options.Suggest = index.Closest
	}
	return options
}

func treeCommand(c *cli.Context) error {
	env, err := setupScan(c)
	if err != nil {
		return err
	}
	_, nodes := buildForest(env)
	printer := display.NewTreePrinter(c.App.Writer, printerOptions(env))
	printer.PrintForest(nodes)
	return nil
}

func listCommand(c *cli.Context) error {
	env, err := setupScan(c)
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintln(w, "Root files:")
	roots := env.roots
	if env.cfg.Output.Relative {
		roots = pathutil.ToRelativeAll(roots, env.cfg.Project.Root)
	}
	for _, root := range roots {
		fmt.Fprintf(w, "  %s\n", root)
	}
	fmt.Fprintln(w, "Search paths:")
	for _, dir := range env.paths.Dirs() {
		fmt.Fprintf(w, "  %s\n", dir)
	}
	return nil
}

func dupsCommand(c *cli.Context) error {
	env, err := setupScan(c)
	if err != nil {
		return err
	}
	builder, _ := buildForest(env)
	sets := builder.DuplicateSets()
	w := c.App.Writer
	if len(sets) == 0 {
		fmt.Fprintln(w, "No duplicate files found.")
		return nil
	}
	for _, set := range sets {
		if env.cfg.Output.Relative {
			set = pathutil.ToRelativeAll(set, env.cfg.Project.Root)
		}
		fmt.Fprintf(w, "%d identical files:\n", len(set))
		for _, path := range set {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
	return nil
}
