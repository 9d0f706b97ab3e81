// Package encr encrypts passwords stored in named cluster configuration.
package encr

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// Prefix marks an encrypted value.
const Prefix = "Encrypted "

const (
	keySize   = 32
	nonceSize = 24
)

var keySalt = []byte("pentaho-named-cluster")

var ErrMalformed = errors.New("malformed encrypted value")

type Encoder interface {
	Encrypt(plain string) (string, error)
	Decrypt(value string) (string, error)
}

type secretboxEncoder struct {
	key [keySize]byte
}

// New derives the encryption key from seed.
func New(seed string) Encoder {
	e := &secretboxEncoder{}
	copy(e.key[:], argon2.IDKey([]byte(seed), keySalt, 1, 64*1024, 2, keySize))
	return e
}

// Encrypt leaves blank values and ${variables} untouched.
func (e *secretboxEncoder) Encrypt(plain string) (string, error) {
	if plain == "" || IsVariable(plain) {
		return plain, nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &e.key)
	return Prefix + hex.EncodeToString(sealed), nil
}

// Decrypt returns values without the prefix as they are.
func (e *secretboxEncoder) Decrypt(value string) (string, error) {
	if !strings.HasPrefix(value, Prefix) {
		return value, nil
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(value, Prefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrMalformed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &e.key)
	if !ok {
		return "", ErrMalformed
	}
	return string(plain), nil
}

func IsVariable(value string) bool {
	return strings.Contains(value, "${")
}
