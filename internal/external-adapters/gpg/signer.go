package gpg

import (
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces armored detached signatures over rendered receipts
type Signer struct {
	entity *openpgp.Entity
}

// NewSignerFromFile loads the first private key found in an armored key file.
// The passphrase is only used when the key is encrypted.
func NewSignerFromFile(keyPath string, passphrase []byte) (*Signer, error) {
	//nolint:gosec // G304: keyPath is the configured signing key
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open signing key: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	return NewSigner(f, passphrase)
}

// NewSigner loads the first private key found in an armored key ring
func NewSigner(r io.Reader, passphrase []byte) (*Signer, error) {
	entities, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	for _, entity := range entities {
		if entity.PrivateKey == nil {
			continue
		}

		if entity.PrivateKey.Encrypted {
			if len(passphrase) == 0 {
				return nil, fmt.Errorf("signing key is encrypted and no passphrase was given")
			}
			if err := entity.DecryptPrivateKeys(passphrase); err != nil {
				return nil, fmt.Errorf("failed to decrypt signing key: %w", err)
			}
		}

		return &Signer{entity: entity}, nil
	}

	return nil, fmt.Errorf("%w: key ring holds no private key", ErrNoKeys)
}

// Fingerprint returns the signing key's fingerprint in upper-case hex
func (s *Signer) Fingerprint() string {
	return fmt.Sprintf("%X", s.entity.PrimaryKey.Fingerprint)
}

// SignDetached writes an armored detached signature of message to w
func (s *Signer) SignDetached(w io.Writer, message io.Reader) error {
	if err := openpgp.ArmoredDetachSign(w, s.entity, message, nil); err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	return nil
}

// SignFile writes an armored detached signature of filePath to sigPath
func (s *Signer) SignFile(filePath, sigPath string) error {
	//nolint:gosec // G304: filePath is the receipt just written by the caller
	in, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file to sign: %w", err)
	}
	//nolint:errcheck // Defer close
	defer in.Close()

	out, err := os.Create(sigPath) //nolint:gosec // G304: sigPath derives from the receipt path
	if err != nil {
		return fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := s.SignDetached(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
