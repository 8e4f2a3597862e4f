package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/salestax/internal/config"
	"github.com/ochairo/salestax/internal/domain/interfaces"
	"github.com/ochairo/salestax/internal/external-adapters/yaml"
)

func runList(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		listsDir = fs.String("dir", cfg.ListsDir, "Path to shopping lists directory")
		logLevel = fs.String("log-level", "", "Override log level (debug, info, warn, error)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: salestax list [options]

List all stored shopping lists.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  salestax list
  salestax list --dir ./lists
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg, *logLevel)
	exitOnError(err)

	exitOnError(executeList(ctx, *listsDir, os.Stdout, logger))
}

func executeList(ctx context.Context, listsDir string, stdout io.Writer, logger interfaces.Logger) error {
	repo := yaml.NewShoppingListRepository(listsDir, logger)

	lists, err := repo.ListShoppingLists(ctx)
	if err != nil {
		return fmt.Errorf("listing shopping lists: %w", err)
	}

	fmt.Fprintf(stdout, "Shopping lists in %s (%d total):\n\n", listsDir, len(lists))

	for _, list := range lists {
		fmt.Fprintf(stdout, "  %-20s %d lines\n", list.Name, len(list.Lines))
		fmt.Fprintf(stdout, "  %-20s Source: %s\n", "", list.Source)
	}

	return nil
}
