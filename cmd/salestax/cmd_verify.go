package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ochairo/salestax/internal/config"
	"github.com/ochairo/salestax/internal/domain-adapters/gateways"
	"github.com/ochairo/salestax/internal/external-adapters/gpg"
)

type verifyOptions struct {
	filePath     string
	checksumFile string
	sigFile      string
	keyFile      string
	verifyAll    bool
}

func runVerify(ctx context.Context, _ *config.Config, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		checksumFile = fs.String("checksum", "", "Checksum file to verify against (.sha256)")
		sigFile      = fs.String("sig", "", "Detached GPG signature file (.asc)")
		keyFile      = fs.String("key", "", "Public key file used to check --sig")
		verifyAll    = fs.Bool("all", false, "Verify every sidecar found next to the receipt (<file>.sha256, <file>.asc)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: salestax verify <file> [options]

Verify a saved receipt against its checksum and/or detached signature.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  salestax verify receipt.txt --checksum receipt.txt.sha256
  salestax verify receipt.txt --sig receipt.txt.asc --key till.pub.asc
  salestax verify receipt.txt --all --key till.pub.asc
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: file path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	opts := verifyOptions{
		filePath:     fs.Arg(0),
		checksumFile: *checksumFile,
		sigFile:      *sigFile,
		keyFile:      *keyFile,
		verifyAll:    *verifyAll,
	}

	exitOnError(executeVerify(ctx, opts, os.Stdout))
}

func executeVerify(ctx context.Context, opts verifyOptions, stdout io.Writer) error {
	verified := 0
	failed := 0

	// Auto-detect sidecar files if --all is specified
	if opts.verifyAll {
		if opts.checksumFile == "" && fileExists(opts.filePath+gateways.ChecksumSuffix) {
			opts.checksumFile = opts.filePath + gateways.ChecksumSuffix
		}
		if opts.sigFile == "" && fileExists(opts.filePath+".asc") {
			opts.sigFile = opts.filePath + ".asc"
		}
	}

	fmt.Fprintf(stdout, "Verifying %s\n\n", filepath.Base(opts.filePath))

	if opts.checksumFile != "" {
		if err := verifyChecksum(ctx, opts.filePath, opts.checksumFile); err != nil {
			fmt.Fprintf(stdout, "❌ Checksum verification FAILED: %v\n", err)
			failed++
		} else {
			fmt.Fprintf(stdout, "✅ Checksum verified\n")
			verified++
		}
	}

	if opts.sigFile != "" {
		fingerprint, err := verifySignature(opts.filePath, opts.sigFile, opts.keyFile)
		if err != nil {
			fmt.Fprintf(stdout, "❌ Signature verification FAILED: %v\n", err)
			failed++
		} else {
			fmt.Fprintf(stdout, "✅ Signature verified (key %s)\n", fingerprint)
			verified++
		}
	}

	fmt.Fprintf(stdout, "\nVerified: %d, failed: %d\n", verified, failed)

	if failed > 0 {
		return fmt.Errorf("%d verification checks failed", failed)
	}

	if verified == 0 {
		return fmt.Errorf("no verification checks performed (specify --checksum, --sig, or --all)")
	}

	return nil
}

func verifyChecksum(ctx context.Context, filePath, checksumFile string) error {
	verifier := gateways.NewChecksumVerifier()

	expected, err := verifier.ReadChecksumFile(checksumFile)
	if err != nil {
		return err
	}

	return verifier.VerifyChecksum(ctx, filePath, expected)
}

func verifySignature(filePath, sigFile, keyFile string) (string, error) {
	if keyFile == "" {
		return "", fmt.Errorf("a public key is required to check signatures (use --key)")
	}

	verifier := gpg.NewVerifier()
	if err := verifier.ImportKeyFromFile(keyFile); err != nil {
		return "", fmt.Errorf("failed to import public key: %w", err)
	}

	return verifier.VerifySignatureFromFile(filePath, sigFile)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
