// Package domain defines the core cryptographic domain types for the
// envelope-encryption subsystem. Each file is sealed once with a fresh
// 256-bit symmetric key, and that key is wrapped once per authorized
// principal with the principal's RSA public key.
package domain

const (
	// KeySize is the symmetric key size in bytes (AES-256).
	KeySize = 32

	// NonceSize is the AES-GCM nonce size in bytes. The persisted blob format
	// uses a 16-byte nonce, generated fresh per seal and never caller-supplied.
	NonceSize = 16

	// TagSize is the AES-GCM authentication tag size in bytes.
	TagSize = 16

	// BlobOverhead is the fixed prefix of a sealed blob: nonce followed by tag.
	// Any blob shorter than this is malformed and fails closed.
	BlobOverhead = NonceSize + TagSize
)
