package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/incdeps/internal/display"
	"github.com/standardbeagle/incdeps/internal/watch"
)

func watchCommand(c *cli.Context) error {
	env, err := setupScan(c)
	if err != nil {
		return err
	}

	reprint := func() {
		// A fresh builder per pass: stale nodes must not survive edits.
		_, nodes := buildForest(env)
		printer := display.NewTreePrinter(c.App.Writer, printerOptions(env))
		printer.PrintForest(nodes)
	}
	reprint()

	debounce := time.Duration(env.cfg.Watch.DebounceMs) * time.Millisecond
	watcher, err := watch.New(env.cfg.Project.Root, env.paths.Dirs(), env.cfg.Scan.Patterns, debounce, func(paths []string) {
		fmt.Fprintf(c.App.Writer, "\n# rescan (%d files changed)\n", len(paths))
		// Re-enumerate roots so created and deleted files are picked up.
		if roots, err := rootFiles(c, env.cfg); err == nil {
			env.roots = roots
		}
		reprint()
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(ctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
