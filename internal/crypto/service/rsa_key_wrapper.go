package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	cryptoDomain "github.com/allisson/courier/internal/crypto/domain"
	apperrors "github.com/allisson/courier/internal/errors"
)

// RSAKeyWrapper implements KeyWrapper using RSA-OAEP with SHA-256.
//
// OAEP padding is randomized, so the same symmetric key wrapped for two
// recipients (or twice for the same recipient) produces unlinkable
// ciphertexts, and any tampering with the wrapped bytes is detected at
// unwrap time. Keeping the symmetric key wrapped at rest means the access
// control records alone never contain usable key material.
type RSAKeyWrapper struct{}

// NewRSAKeyWrapper creates a new RSA-OAEP key wrapper instance.
func NewRSAKeyWrapper() *RSAKeyWrapper {
	return &RSAKeyWrapper{}
}

// Wrap encrypts the symmetric key bytes under the recipient's public key.
func (w *RSAKeyWrapper) Wrap(key []byte, publicKeyPEM string) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	publicKey, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return nil, err
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, key, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to wrap key")
	}

	return wrapped, nil
}

// Unwrap recovers the symmetric key with the recipient's private key.
//
// Wrong key, tampered bytes, and format mismatches are indistinguishable by
// design; all surface as ErrUnwrapFailed.
func (w *RSAKeyWrapper) Unwrap(wrappedKey []byte, privateKeyPEM string) ([]byte, error) {
	privateKey, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	key, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, wrappedKey, nil)
	if err != nil {
		return nil, cryptoDomain.ErrUnwrapFailed
	}

	return key, nil
}

// parsePublicKey decodes a PEM-encoded PKIX RSA public key.
func parsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid public key PEM")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("failed to parse public key: %v", err))
	}

	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "public key is not RSA")
	}

	return publicKey, nil
}

// parsePrivateKey decodes a PEM-encoded PKCS#8 RSA private key.
func parsePrivateKey(privateKeyPEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, cryptoDomain.ErrUnwrapFailed
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, cryptoDomain.ErrUnwrapFailed
	}

	privateKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, cryptoDomain.ErrUnwrapFailed
	}

	return privateKey, nil
}
