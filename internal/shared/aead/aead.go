// Package aead provides authenticated encryption with associated data
// for attachment content and owner tags.
package aead

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrDecrypt is returned for every decryption failure. Malformed input,
// a wrong key and mismatched associated data are deliberately not
// distinguishable through this error.
var ErrDecrypt = errors.New("decryption failed")

// KeySize is the required key length in bytes.
const KeySize = chacha20poly1305.KeySize

// Cipher encrypts and decrypts byte slices bound to associated data.
type Cipher interface {
	Encrypt(plaintext, associatedData []byte) ([]byte, error)
	Decrypt(ciphertext, associatedData []byte) ([]byte, error)
}

// XChaCha is an XChaCha20-Poly1305 Cipher with a random nonce prefixed
// to each ciphertext.
type XChaCha struct {
	key []byte
}

// New constructs a Cipher from a 32-byte key.
func New(key []byte) (*XChaCha, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aead key must be %d bytes, got %d", KeySize, len(key))
	}
	return &XChaCha{key: append([]byte(nil), key...)}, nil
}

// Encrypt seals plaintext with associatedData authenticated but not
// encrypted.
func (c *XChaCha) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	a, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	nonce := make([]byte, a.NonceSize(), a.NonceSize()+len(plaintext)+a.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}
	return a.Seal(nonce, nonce, plaintext, associatedData), nil
}

// Decrypt opens a ciphertext produced by Encrypt. The same
// associatedData must be supplied or the call fails with ErrDecrypt.
func (c *XChaCha) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	a, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	if len(ciphertext) < a.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce, sealed := ciphertext[:a.NonceSize()], ciphertext[a.NonceSize():]
	plaintext, err := a.Open(nil, nonce, sealed, associatedData)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

var _ Cipher = (*XChaCha)(nil)
