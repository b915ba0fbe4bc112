package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/courier/internal/errors"
)

// AccessGrant authorizes one principal to decrypt one file. It carries the
// file's symmetric key wrapped under the grantee's public key; the key is
// never stored unwrapped.
//
// Grant presence is the sole access check for non-owners: no grant row means
// no access, with no fallback.
type AccessGrant struct {
	ID          uuid.UUID
	FileID      uuid.UUID
	PrincipalID uuid.UUID
	WrappedKey  []byte
	CreatedAt   time.Time
}

// NewAccessGrant creates an AccessGrant with a generated ID.
func NewAccessGrant(fileID, principalID uuid.UUID, wrappedKey []byte) (*AccessGrant, error) {
	if fileID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "file id is required")
	}
	if principalID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "principal id is required")
	}
	if len(wrappedKey) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "wrapped key is required")
	}

	return &AccessGrant{
		ID:          uuid.Must(uuid.NewV7()),
		FileID:      fileID,
		PrincipalID: principalID,
		WrappedKey:  wrappedKey,
	}, nil
}
