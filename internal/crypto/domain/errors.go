package domain

import (
	"github.com/allisson/courier/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrInvalidKeySize indicates a symmetric key of incorrect length.
	//
	// Symmetric keys must be exactly 32 bytes (256 bits) for AES-256-GCM.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrCorruptedData indicates a sealed blob is structurally malformed
	// (shorter than the fixed nonce plus tag prefix). The blob cannot be
	// parsed, let alone authenticated.
	ErrCorruptedData = errors.Wrap(errors.ErrInvalidInput, "corrupted data")

	// ErrAuthenticationFailed indicates the AEAD integrity check failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext or tag has been tampered with
	//
	// Decryption fails closed: no truncated or partial plaintext is ever
	// returned when authentication fails.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "authentication failure")

	// ErrUnwrapFailed indicates a wrapped key could not be recovered: wrong
	// private key, tampered wrapped-key bytes, or a padding/format mismatch.
	//
	// OAEP deliberately does not disclose which; neither does this error.
	ErrUnwrapFailed = errors.Wrap(errors.ErrInvalidInput, "unwrap failure")

	// ErrAccessDenied is the single outward-facing denial for the decrypt
	// path. Missing grants, unwrap failures, and authentication failures all
	// collapse into it so that callers cannot distinguish which stage failed.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")
)
