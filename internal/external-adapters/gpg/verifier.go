// Package gpg signs rendered receipts with detached OpenPGP signatures and verifies them.
package gpg

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// ErrNoKeys is returned when a verification or signing operation has no usable key
var ErrNoKeys = errors.New("no GPG keys imported")

const armoredSignaturePrefix = "-----BEGIN PGP SIGNATURE---"

// Verifier checks detached receipt signatures against an in-memory keyring,
// using ProtonMail's maintained fork of golang.org/x/crypto/openpgp
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports public keys from an armored or binary key file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// Verify checks a detached signature (armored or binary) over data.
// It returns the fingerprint of the signing key.
func (v *Verifier) Verify(data, signature io.Reader) (string, error) {
	if len(v.keyring) == 0 {
		return "", fmt.Errorf("%w, import a public key first", ErrNoKeys)
	}

	// Signatures are small; anything over 10KB is not one of ours
	sigData, err := io.ReadAll(io.LimitReader(signature, 10*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read signature: %w", err)
	}

	if len(sigData) < 10 {
		return "", fmt.Errorf("signature too small to be a valid GPG signature")
	}

	isArmored := len(sigData) >= len(armoredSignaturePrefix) &&
		string(sigData[:len(armoredSignaturePrefix)]) == armoredSignaturePrefix

	var signer *openpgp.Entity
	if isArmored {
		signer, err = openpgp.CheckArmoredDetachedSignature(v.keyring, data, &sigReader{data: sigData}, nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, data, &sigReader{data: sigData}, nil)
	}

	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}

	return fmt.Sprintf("%X", signer.PrimaryKey.Fingerprint), nil
}

// VerifySignatureFromFile verifies a receipt file against a detached signature file
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) (string, error) {
	if len(v.keyring) == 0 {
		return "", fmt.Errorf("%w, import a public key first", ErrNoKeys)
	}

	//nolint:gosec // G304: sigPath is user-provided for GPG verification
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is user-provided for GPG verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	return v.Verify(dataFile, sigFile)
}

// GetKeyringSize returns the number of keys in the keyring
func (v *Verifier) GetKeyringSize() int {
	return len(v.keyring)
}

// ClearKeyring clears all imported keys
func (v *Verifier) ClearKeyring() {
	v.keyring = make(openpgp.EntityList, 0)
}

// sigReader replays buffered signature bytes
type sigReader struct {
	data []byte
	pos  int
}

func (r *sigReader) Read(p []byte) (n int, err error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}

	n = copy(p, r.data[r.pos:])
	r.pos += n

	if r.pos >= len(r.data) {
		return n, io.EOF
	}

	return n, nil
}
