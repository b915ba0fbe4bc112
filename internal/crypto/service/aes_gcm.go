package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/courier/internal/crypto/domain"
)

// AESGCMCipher implements SymmetricCipher using AES-256-GCM.
//
// The sealed blob is laid out as nonce(16) || tag(16) || ciphertext, with the
// nonce and tag sizes fixed by the persisted format. Go's GCM appends the tag
// to the ciphertext, so Seal and Open re-order between the wire layout and
// the layout the standard library expects.
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from
//	multiple goroutines. Each Seal generates a unique nonce independently.
type AESGCMCipher struct{}

// NewAESGCMCipher creates a new AES-256-GCM cipher instance.
func NewAESGCMCipher() *AESGCMCipher {
	return &AESGCMCipher{}
}

// GenerateKey produces a uniformly random 256-bit key using crypto/rand.
func (a *AESGCMCipher) GenerateKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext into a nonce || tag || ciphertext blob.
//
// A fresh 16-byte nonce is generated inside Seal for every call; callers
// cannot supply one, which removes nonce-reuse risk at the API level.
func (a *AESGCMCipher) Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal returns ciphertext with the tag appended
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-cryptoDomain.TagSize]
	tag := sealed[len(sealed)-cryptoDomain.TagSize:]

	blob := make([]byte, 0, cryptoDomain.BlobOverhead+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)

	return blob, nil
}

// Open decrypts a nonce || tag || ciphertext blob and verifies its tag.
//
// Malformed blobs fail with ErrCorruptedData and tag mismatches with
// ErrAuthenticationFailed. Both are hard failures; no partial or truncated
// plaintext is ever returned.
func (a *AESGCMCipher) Open(blob, key []byte) ([]byte, error) {
	if len(blob) < cryptoDomain.BlobOverhead {
		return nil, cryptoDomain.ErrCorruptedData
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := blob[:cryptoDomain.NonceSize]
	tag := blob[cryptoDomain.NonceSize:cryptoDomain.BlobOverhead]
	ciphertext := blob[cryptoDomain.BlobOverhead:]

	// Rebuild the ciphertext || tag layout the standard library expects
	sealed := make([]byte, 0, len(ciphertext)+cryptoDomain.TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	return plaintext, nil
}

// newGCM builds an AES-256-GCM AEAD with the 16-byte nonce size the blob
// format mandates.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aead, nil
}
