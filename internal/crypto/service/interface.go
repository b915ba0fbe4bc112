// Package service provides the cryptographic services for envelope
// encryption: the AEAD file cipher, the per-recipient key wrapper, and the
// engine orchestrating them.
package service

import (
	"github.com/google/uuid"

	identityDomain "github.com/allisson/courier/internal/identity/domain"
)

// SymmetricCipher is the authenticated encryption primitive for file payloads.
type SymmetricCipher interface {
	// GenerateKey produces a uniformly random 256-bit key.
	GenerateKey() ([]byte, error)

	// Seal encrypts plaintext into a self-contained authenticated blob laid
	// out as nonce || tag || ciphertext. The nonce is generated fresh inside
	// Seal and is never reused with the same key.
	Seal(plaintext, key []byte) ([]byte, error)

	// Open reverses Seal, verifying the authentication tag. It fails with
	// ErrCorruptedData for malformed blobs and ErrAuthenticationFailed when
	// the tag does not verify; it never returns partial plaintext.
	Open(blob, key []byte) ([]byte, error)
}

// KeyWrapper performs asymmetric wrap/unwrap of a symmetric key for one
// recipient. Wrapped keys are opaque bytes sized to the RSA modulus; no other
// component interprets their contents.
type KeyWrapper interface {
	// Wrap encrypts the symmetric key under the recipient's PEM-encoded
	// public key. Padding is randomized, so the same key wrapped twice is not
	// recognizably linkable.
	Wrap(key []byte, publicKeyPEM string) ([]byte, error)

	// Unwrap recovers the symmetric key using the recipient's PEM-encoded
	// private key, failing with ErrUnwrapFailed on wrong key or tamper.
	Unwrap(wrappedKey []byte, privateKeyPEM string) ([]byte, error)
}

// EnvelopeEngine encrypts a file once and authorizes a set of principals, and
// decrypts it on behalf of a single principal holding a wrapped key.
type EnvelopeEngine interface {
	// EncryptForRecipients seals plaintext under a fresh symmetric key and
	// wraps that key for every principal in {owner} ∪ recipients. The
	// symmetric key is zeroed before returning; it is never exposed to the
	// caller. Either every wrap succeeds or the whole operation fails.
	EncryptForRecipients(
		plaintext []byte,
		owner *identityDomain.Principal,
		recipients []*identityDomain.Principal,
	) (blob []byte, wrappedKeys map[uuid.UUID][]byte, err error)

	// DecryptForPrincipal unwraps wrappedKey with the principal's private key
	// and opens the blob. Both failure modes collapse into ErrAccessDenied;
	// the failing stage is logged internally but never leaked to the caller.
	DecryptForPrincipal(
		blob []byte,
		wrappedKey []byte,
		principal *identityDomain.Principal,
	) ([]byte, error)
}
