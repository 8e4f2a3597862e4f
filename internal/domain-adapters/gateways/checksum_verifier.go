// Package gateways adapts infrastructure concerns for rendered receipt files.
package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChecksumSuffix is appended to a receipt path to name its checksum file
const ChecksumSuffix = ".sha256"

// ErrChecksumMismatch is returned when a receipt's content does not match its recorded checksum
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ChecksumVerifier records and checks SHA256 checksums of receipt files
type ChecksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier() *ChecksumVerifier {
	return &ChecksumVerifier{}
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (v *ChecksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum verifies a file's SHA256 checksum
func (v *ChecksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	actualSum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actualSum, expectedSum) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expectedSum, actualSum)
	}

	return nil
}

// WriteChecksumFile writes "<hex>  <basename>" next to filePath and returns the checksum file path
func (v *ChecksumVerifier) WriteChecksumFile(filePath string) (string, error) {
	sum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return "", err
	}

	checksumPath := filePath + ChecksumSuffix
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(filePath))
	if err := os.WriteFile(checksumPath, []byte(line), 0600); err != nil {
		return "", fmt.Errorf("failed to write checksum file: %w", err)
	}

	return checksumPath, nil
}

// ReadChecksumFile returns the checksum recorded in a "<hex>  <name>" file
func (v *ChecksumVerifier) ReadChecksumFile(checksumPath string) (string, error) {
	//nolint:gosec // G304: checksumPath is user-provided for verification
	data, err := os.ReadFile(checksumPath)
	if err != nil {
		return "", fmt.Errorf("failed to read checksum file: %w", err)
	}

	parts := strings.Fields(string(data))
	if len(parts) < 1 {
		return "", fmt.Errorf("invalid checksum file format")
	}

	return parts[0], nil
}
