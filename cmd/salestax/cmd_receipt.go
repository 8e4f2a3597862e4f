package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ochairo/salestax/internal/config"
	"github.com/ochairo/salestax/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/salestax/internal/domain-orchestrators"
	"github.com/ochairo/salestax/internal/domain/entities"
	"github.com/ochairo/salestax/internal/domain/interfaces"
	"github.com/ochairo/salestax/internal/external-adapters/gpg"
	"github.com/ochairo/salestax/internal/external-adapters/text"
	"github.com/ochairo/salestax/internal/external-adapters/yaml"
)

// Output formats for receipts
const (
	formatText = "text"
	formatYAML = "yaml"
)

type receiptOptions struct {
	file       string
	list       string
	listsDir   string
	format     string
	out        string
	checksum   bool
	sign       bool
	signKey    string
	passphrase string
}

func runReceipt(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("receipt", flag.ExitOnError)
	var (
		file     = fs.String("file", "", "Read purchase lines from a text file, or shopping lists from a .yml/.yaml file (default: stdin)")
		list     = fs.String("list", "", "Use a stored shopping list by name")
		listsDir = fs.String("lists-dir", cfg.ListsDir, "Shopping lists directory (for --list)")
		format   = fs.String("format", formatText, "Output format: text or yaml")
		out      = fs.String("out", "", "Write the receipt to this file instead of stdout")
		checksum = fs.Bool("checksum", false, "Also write <out>.sha256 (requires --out)")
		sign     = fs.Bool("sign", false, "Also write a detached signature <out>.asc (requires --out)")
		signKey  = fs.String("sign-key", cfg.SigningKey, "Armored private key used by --sign")
		logLevel = fs.String("log-level", "", "Override log level (debug, info, warn, error)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: salestax receipt [options]

Print a sales tax receipt. Each input line has the form "<qty> <description> at <price>".
Lines that do not match are skipped.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  printf '2 book at 12.49\n1 music CD at 14.99\n' | salestax receipt
  salestax receipt --file basket.txt --format yaml
  salestax receipt --list "Input 2" --out receipt.txt --checksum --sign
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg, *logLevel)
	exitOnError(err)

	opts := receiptOptions{
		file:       *file,
		list:       *list,
		listsDir:   *listsDir,
		format:     *format,
		out:        *out,
		checksum:   *checksum,
		sign:       *sign,
		signKey:    *signKey,
		passphrase: cfg.SigningPassphrase,
	}

	exitOnError(executeReceipt(ctx, opts, os.Stdin, os.Stdout, logger))
}

func executeReceipt(ctx context.Context, opts receiptOptions, stdin io.Reader, stdout io.Writer, logger interfaces.Logger) error {
	if opts.format != formatText && opts.format != formatYAML {
		return fmt.Errorf("unknown format %q (want text or yaml)", opts.format)
	}
	if opts.file != "" && opts.list != "" {
		return fmt.Errorf("--file and --list are mutually exclusive")
	}
	if (opts.checksum || opts.sign) && opts.out == "" {
		return fmt.Errorf("--checksum and --sign require --out")
	}
	if opts.sign && opts.signKey == "" {
		return fmt.Errorf("--sign requires a key (--sign-key or SALESTAX_SIGNING_KEY)")
	}

	orch := orchestrators.NewCheckoutOrchestrator(text.NewLineParser(), orchestrators.CheckoutOrchestratorConfig{
		Lists:  yaml.NewShoppingListRepository(opts.listsDir, logger),
		Logger: logger,
	})

	results, err := checkout(ctx, orch, opts, stdin)
	if err != nil {
		return err
	}

	rendered, err := renderResults(results, opts.format)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err := io.WriteString(stdout, rendered)
		return err
	}

	return writeReceiptFile(opts, rendered, stdout, logger)
}

// checkout resolves the input (a stored list, a YAML file, a text file, or stdin) and runs it
func checkout(ctx context.Context, orch *orchestrators.CheckoutOrchestrator, opts receiptOptions, stdin io.Reader) ([]*orchestrators.CheckoutResult, error) {
	if opts.list != "" {
		result, err := orch.CheckoutStored(ctx, opts.list)
		if err != nil {
			return nil, err
		}
		return []*orchestrators.CheckoutResult{result}, nil
	}

	lists, err := loadShoppingLists(opts.file, stdin)
	if err != nil {
		return nil, err
	}

	results, err := orch.CheckoutAll(ctx, lists)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	return results, nil
}

func loadShoppingLists(file string, stdin io.Reader) ([]*entities.ShoppingList, error) {
	switch {
	case strings.HasSuffix(file, ".yml") || strings.HasSuffix(file, ".yaml"):
		return yaml.NewShoppingListParser().ParseFile(file)

	case file != "":
		//nolint:gosec // G304: file is the user's input file
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		//nolint:errcheck // Defer close on read-only file
		defer f.Close()

		lines, err := readLines(f)
		if err != nil {
			return nil, err
		}
		return []*entities.ShoppingList{{Lines: lines, Source: file}}, nil

	default:
		lines, err := readLines(stdin)
		if err != nil {
			return nil, err
		}
		return []*entities.ShoppingList{{Lines: lines}}, nil
	}
}

// readLines reads one purchase line per input line, trimming surrounding whitespace
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// renderResults formats every result. Named runs get an "<name>:" header and a trailing blank line.
func renderResults(results []*orchestrators.CheckoutResult, format string) (string, error) {
	var buf bytes.Buffer

	for i, result := range results {
		switch format {
		case formatYAML:
			if i > 0 {
				buf.WriteString("---\n")
			}
			if err := yaml.EncodeReceipt(&buf, result.Name, result.Receipt); err != nil {
				return "", err
			}
		default:
			if result.Name != "" {
				buf.WriteString(result.Name + ":\n")
			}
			buf.WriteString(result.Text())
			buf.WriteString("\n")
			if result.Name != "" {
				buf.WriteString("\n")
			}
		}
	}

	return buf.String(), nil
}

func writeReceiptFile(opts receiptOptions, rendered string, stdout io.Writer, logger interfaces.Logger) error {
	if err := os.WriteFile(opts.out, []byte(rendered), 0600); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	fmt.Fprintf(stdout, "Receipt written to %s\n", opts.out)

	if opts.checksum {
		checksumPath, err := gateways.NewChecksumVerifier().WriteChecksumFile(opts.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Checksum written to %s\n", checksumPath)
	}

	if opts.sign {
		var passphrase []byte
		if opts.passphrase != "" {
			passphrase = []byte(opts.passphrase)
		}

		signer, err := gpg.NewSignerFromFile(opts.signKey, passphrase)
		if err != nil {
			return err
		}

		sigPath := opts.out + ".asc"
		if err := signer.SignFile(opts.out, sigPath); err != nil {
			return err
		}
		logger.Info("receipt signed", interfaces.F("file", opts.out), interfaces.F("key", signer.Fingerprint()))
		fmt.Fprintf(stdout, "Signature written to %s\n", sigPath)
	}

	return nil
}
