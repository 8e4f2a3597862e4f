package gateways

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestVerifyChecksum tests SHA256 checksum verification of a receipt file
func TestVerifyChecksum(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "receipt.txt")

	content := []byte("2 book: 24.98\n1 music CD: 16.49\n1 chocolate bar: 0.85\nSales Taxes: 1.50\nTotal: 42.32")
	if err := os.WriteFile(testFile, content, 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	verifier := NewChecksumVerifier()

	actualSum, err := verifier.CalculateChecksum(testFile)
	if err != nil {
		t.Fatalf("CalculateChecksum() error = %v", err)
	}

	if len(actualSum) != 64 {
		t.Errorf("CalculateChecksum() returned checksum length = %d, want 64 (SHA256 hex)", len(actualSum))
	}

	t.Run("valid checksum", func(t *testing.T) {
		if err := verifier.VerifyChecksum(context.Background(), testFile, actualSum); err != nil {
			t.Errorf("VerifyChecksum() with valid checksum error = %v", err)
		}
	})

	t.Run("upper-case checksum", func(t *testing.T) {
		if err := verifier.VerifyChecksum(context.Background(), testFile, strings.ToUpper(actualSum)); err != nil {
			t.Errorf("VerifyChecksum() with upper-case checksum error = %v", err)
		}
	})

	t.Run("invalid checksum", func(t *testing.T) {
		invalidSum := "0000000000000000000000000000000000000000000000000000000000000000"
		err := verifier.VerifyChecksum(context.Background(), testFile, invalidSum)
		if !errors.Is(err, ErrChecksumMismatch) {
			t.Errorf("VerifyChecksum() error = %v, want ErrChecksumMismatch", err)
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		if err := verifier.VerifyChecksum(context.Background(), "/nonexistent/file.txt", actualSum); err == nil {
			t.Error("VerifyChecksum() with non-existent file should return error")
		}
	})
}

// TestCalculateChecksum tests SHA256 checksum calculation
func TestCalculateChecksum(t *testing.T) {
	tests := []struct {
		name         string
		content      []byte
		wantChecksum string
	}{
		{
			name:         "empty file",
			content:      []byte(""),
			wantChecksum: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:         "simple content",
			content:      []byte("Hello, World!"),
			wantChecksum: "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f",
		},
	}

	verifier := NewChecksumVerifier()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "test.txt")
			if err := os.WriteFile(testFile, tt.content, 0600); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := verifier.CalculateChecksum(testFile)
			if err != nil {
				t.Fatalf("CalculateChecksum() error = %v", err)
			}
			if got != tt.wantChecksum {
				t.Errorf("CalculateChecksum() = %v, want %v", got, tt.wantChecksum)
			}
		})
	}
}

func TestChecksumFile_WriteAndRead(t *testing.T) {
	tmpDir := t.TempDir()
	receiptPath := filepath.Join(tmpDir, "receipt.txt")
	if err := os.WriteFile(receiptPath, []byte("Hello, World!"), 0600); err != nil {
		t.Fatal(err)
	}

	verifier := NewChecksumVerifier()

	checksumPath, err := verifier.WriteChecksumFile(receiptPath)
	if err != nil {
		t.Fatalf("WriteChecksumFile() error = %v", err)
	}
	if checksumPath != receiptPath+ChecksumSuffix {
		t.Errorf("WriteChecksumFile() path = %v, want %v", checksumPath, receiptPath+ChecksumSuffix)
	}

	data, err := os.ReadFile(checksumPath) //nolint:gosec // G304: test temp path
	if err != nil {
		t.Fatal(err)
	}
	want := "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f  receipt.txt\n"
	if string(data) != want {
		t.Errorf("checksum file = %q, want %q", data, want)
	}

	sum, err := verifier.ReadChecksumFile(checksumPath)
	if err != nil {
		t.Fatalf("ReadChecksumFile() error = %v", err)
	}
	if err := verifier.VerifyChecksum(context.Background(), receiptPath, sum); err != nil {
		t.Errorf("VerifyChecksum() error = %v", err)
	}
}

func TestReadChecksumFile_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	empty := filepath.Join(tmpDir, "empty.sha256")
	if err := os.WriteFile(empty, []byte("   \n"), 0600); err != nil {
		t.Fatal(err)
	}

	verifier := NewChecksumVerifier()

	if _, err := verifier.ReadChecksumFile(empty); err == nil {
		t.Error("ReadChecksumFile() should fail for an empty file")
	}
	if _, err := verifier.ReadChecksumFile(filepath.Join(tmpDir, "missing.sha256")); err == nil {
		t.Error("ReadChecksumFile() should fail for a missing file")
	}
}
