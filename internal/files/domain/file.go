// Package domain defines the core file-sharing domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/courier/internal/errors"
)

// EncryptedFile represents a stored file: metadata plus a reference to the
// sealed ciphertext blob. Plaintext is never persisted.
type EncryptedFile struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	// Filename is the name supplied at upload, kept for download responses.
	Filename string
	// BlobRef locates the ciphertext in blob storage. Cleared on revocation.
	BlobRef string
	// Size is the plaintext size in bytes at upload time.
	Size int64
	// Revoked marks a file whose ciphertext and grants have been destroyed.
	// It never transitions back to false.
	Revoked   bool
	CreatedAt time.Time
}

// NewEncryptedFile creates an EncryptedFile with a generated ID.
func NewEncryptedFile(ownerID uuid.UUID, filename, blobRef string, size int64) (*EncryptedFile, error) {
	if ownerID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "owner id is required")
	}
	if filename == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "filename is required")
	}
	if blobRef == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "blob ref is required")
	}

	return &EncryptedFile{
		ID:       uuid.Must(uuid.NewV7()),
		OwnerID:  ownerID,
		Filename: filename,
		BlobRef:  blobRef,
		Size:     size,
	}, nil
}

// Revoke marks the file revoked and drops the blob reference. Revoking an
// already revoked file is a no-op.
func (f *EncryptedFile) Revoke() {
	f.Revoked = true
	f.BlobRef = ""
}

// IsOwnedBy reports whether the principal owns this file.
func (f *EncryptedFile) IsOwnedBy(principalID uuid.UUID) bool {
	return f.OwnerID == principalID
}
