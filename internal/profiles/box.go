package profiles

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrUndecryptable is returned when a sealed value cannot be opened with the
// configured secret.
var ErrUndecryptable = errors.New("stored secret cannot be decrypted")

// Box seals API keys at rest with NaCl secretbox.
type Box struct {
	key [32]byte
}

// NewBox derives the sealing key from a passphrase.
func NewBox(secret string) *Box {
	return &Box{key: sha256.Sum256([]byte(secret))}
}

// Seal encrypts plain and returns base64(nonce || ciphertext).
func (b *Box) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", errors.Wrap(err, "read nonce")
	}
	out := secretbox.Seal(nonce[:], []byte(plain), &nonce, &b.key)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (b *Box) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrUndecryptable
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrUndecryptable
	}
	return string(plain), nil
}
