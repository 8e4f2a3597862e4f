package gpg

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// newTestEntity generates a small Ed25519 key so tests stay fast
func newTestEntity(t *testing.T) *openpgp.Entity {
	t.Helper()

	entity, err := openpgp.NewEntity("Till One", "test", "till@example.com", &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
	})
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return entity
}

func writeArmored(t *testing.T, path, blockType string, serialize func(io.Writer) error) {
	t.Helper()

	f, err := os.Create(path) //nolint:gosec // G304: test temp path
	if err != nil {
		t.Fatal(err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	w, err := armor.Encode(f, blockType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := serialize(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

// writeKeyPair writes the entity's armored private and public keys into dir
func writeKeyPair(t *testing.T, dir string, entity *openpgp.Entity) (privPath, pubPath string) {
	t.Helper()

	privPath = filepath.Join(dir, "signing.asc")
	pubPath = filepath.Join(dir, "signing.pub.asc")

	writeArmored(t, privPath, openpgp.PrivateKeyType, func(w io.Writer) error {
		return entity.SerializePrivate(w, nil)
	})
	writeArmored(t, pubPath, openpgp.PublicKeyType, entity.Serialize)

	return privPath, pubPath
}
