package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/salestax/internal/config"
	orchestrators "github.com/ochairo/salestax/internal/domain-orchestrators"
	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/ochairo/salestax/internal/domain/interfaces"
	"github.com/ochairo/salestax/internal/external-adapters/text"
)

// demoLists are the three reference baskets
var demoLists = []*entities.ShoppingList{
	{
		Name: "Input 1",
		Lines: []string{
			"2 book at 12.49",
			"1 music CD at 14.99",
			"1 chocolate bar at 0.85",
		},
	},
	{
		Name: "Input 2",
		Lines: []string{
			"1 imported box of chocolates at 10.00",
			"1 imported bottle of perfume at 47.50",
		},
	},
	{
		Name: "Input 3",
		Lines: []string{
			"1 imported bottle of perfume at 27.99",
			"1 bottle of perfume at 18.99",
			"1 packet of headache pills at 9.75",
			"3 imported boxes of chocolates at 11.25",
		},
	},
}

func runDemo(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	var (
		format   = fs.String("format", formatText, "Output format: text or yaml")
		logLevel = fs.String("log-level", "", "Override log level (debug, info, warn, error)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: salestax demo [options]

Print receipts for the three reference inputs.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg, *logLevel)
	exitOnError(err)

	exitOnError(executeDemo(ctx, *format, os.Stdout, logger))
}

func executeDemo(ctx context.Context, format string, stdout io.Writer, logger interfaces.Logger) error {
	if format != formatText && format != formatYAML {
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}

	orch := orchestrators.NewCheckoutOrchestrator(text.NewLineParser(), orchestrators.CheckoutOrchestratorConfig{
		Logger: logger,
	})

	results, err := orch.CheckoutAll(ctx, demoLists)
	if err != nil {
		return err
	}

	rendered, err := renderResults(results, format)
	if err != nil {
		return err
	}

	_, err = io.WriteString(stdout, rendered)
	return err
}
