package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/incdeps/internal/config"
	"github.com/standardbeagle/incdeps/internal/debug"
	"github.com/standardbeagle/incdeps/internal/resolve"
	"github.com/standardbeagle/incdeps/internal/scan"
	"github.com/standardbeagle/incdeps/internal/version"
)

var Version = version.Version // Use centralized version management

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
	}

	cfg, err := config.Load(absRoot)
	if err != nil {
		return nil, err
	}
	cfg.Project.Root = absRoot

	// Apply CLI flag overrides
	if patterns := c.StringSlice("pattern"); len(patterns) > 0 {
		cfg.Scan.Patterns = patterns
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, excludes...)
	}
	if c.Bool("no-env") {
		cfg.Paths.UseEnv = false
	}
	if c.Bool("relative") {
		cfg.Output.Relative = true
	}
	if c.Bool("suggest") {
		cfg.Output.Suggest = true
	}
	if indent := c.String("indent"); indent != "" {
		cfg.Output.Indent = indent
	}
	return cfg, nil
}

// buildSearchPaths assembles the search path set in registration order:
// project root, -I flags, INCLUDE-style env entries, config file entries.
// Invalid entries are warned to stderr and skipped; duplicates are dropped
// silently.
func buildSearchPaths(c *cli.Context, cfg *config.Config) *resolve.SearchPaths {
	paths := resolve.NewSearchPaths()
	register := func(origin, dir string) {
		if paths.Add(dir) {
			return
		}
		if dir == "" || !isDir(dir) {
			fmt.Fprintf(os.Stderr, "warning: ignoring %s search path %q: not an existing directory\n", origin, dir)
			return
		}
		// Existing directory already registered earlier; order keeps the
		// first registration, so nothing to report.
		debug.LogScan("duplicate search path %s\n", dir)
	}

	register("root", cfg.Project.Root)
	for _, dir := range c.StringSlice("include-dir") {
		register("-I", dir)
	}
	if cfg.Paths.UseEnv {
		for _, dir := range config.EnvIncludeDirs(os.Getenv(cfg.Paths.EnvVar)) {
			register(cfg.Paths.EnvVar, dir)
		}
	}
	for _, dir := range cfg.Paths.IncludeDirs {
		register("config", dir)
	}
	return paths
}

// rootFiles returns the traversal roots: explicit file arguments when given,
// otherwise the matching files directly inside the project root.
func rootFiles(c *cli.Context, cfg *config.Config) ([]string, error) {
	if c.Args().Len() > 0 {
		roots := make([]string, 0, c.Args().Len())
		for _, arg := range c.Args().Slice() {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve root file %q: %w", arg, err)
			}
			roots = append(roots, abs)
		}
		return roots, nil
	}
	if err := scan.ValidatePatterns(cfg.Scan.Patterns); err != nil {
		return nil, err
	}
	if err := scan.ValidatePatterns(cfg.Scan.Exclude); err != nil {
		return nil, err
	}
	return scan.Roots(cfg.Project.Root, cfg.Scan.Patterns, cfg.Scan.Exclude)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// newApp builds the CLI application. Split from main so tests can run
// commands against an in-memory writer.
func newApp() *cli.App {
	return &cli.App{
		Name:                   "incdeps",
		Usage:                  "Print the #include dependency forest of a C/C++ source tree",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to scan (default: current directory)",
			},
			&cli.StringSliceFlag{
				Name:    "include-dir",
				Aliases: []string{"I"},
				Usage:   "Add a search directory for resolving includes (repeatable, compiler -I order)",
			},
			&cli.StringSliceFlag{
				Name:  "pattern",
				Usage: "Root-file glob patterns (e.g., --pattern '*.cpp' --pattern '*.h')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude root files matching glob patterns",
			},
			&cli.BoolFlag{
				Name:  "no-env",
				Usage: "Do not read search directories from the INCLUDE environment variable",
			},
			&cli.BoolFlag{
				Name:  "relative",
				Usage: "Display paths relative to the project root",
			},
			&cli.BoolFlag{
				Name:  "suggest",
				Usage: "Suggest near-miss header names for unresolved includes",
			},
			&cli.StringFlag{
				Name:  "indent",
				Usage: "Per-level indent marker",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "tree",
				Aliases:   []string{"t"},
				Usage:     "Print the include forest (default command)",
				ArgsUsage: "[file ...]",
				Action:    treeCommand,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the root files and search directories a scan would use",
				Action:  listCommand,
			},
			{
				Name:   "dups",
				Usage:  "Report byte-identical files reachable under distinct paths",
				Action: dupsCommand,
			},
			{
				Name:   "watch",
				Usage:  "Reprint the include forest whenever a watched file changes",
				Action: watchCommand,
			},
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					return nil
				},
			},
		},
		// Bare "incdeps" behaves like "incdeps tree".
		Action: treeCommand,
	}
}

func main() {
	if debug.IsDebugEnabled() {
		debug.SetDebugOutput(os.Stderr)
	}

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
