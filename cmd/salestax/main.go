package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/salestax/internal/config"
	"github.com/ochairo/salestax/internal/domain/interfaces"
	"github.com/ochairo/salestax/internal/external-adapters/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Dispatch to subcommand
	switch command {
	case "receipt":
		runReceipt(ctx, cfg, os.Args[2:])
	case "demo":
		runDemo(ctx, cfg, os.Args[2:])
	case "list":
		runList(ctx, cfg, os.Args[2:])
	case "verify":
		runVerify(ctx, cfg, os.Args[2:])
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `salestax - Sales tax receipts from purchase lines

Usage:
  salestax <command> [options]

Commands:
  receipt   Print a receipt for purchase lines (stdin, a file, or a stored shopping list)
  demo      Print receipts for the three reference inputs
  list      List stored shopping lists
  verify    Verify a saved receipt's checksum and signature

Use "salestax <command> --help" for more information about a command.

Environment:
  SALESTAX_LOG_LEVEL, SALESTAX_LOG_FORMAT, SALESTAX_LISTS_DIR,
  SALESTAX_SIGNING_KEY, SALESTAX_SIGNING_PASSPHRASE (also read from .env)`)
}

// newLogger builds the stderr logger, letting a non-empty flag value override the configured level
func newLogger(cfg *config.Config, levelOverride string) (interfaces.Logger, error) {
	level := cfg.LogLevel
	if levelOverride != "" {
		level = levelOverride
	}

	return zerolog.New(os.Stderr, level, cfg.LogFormat)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
