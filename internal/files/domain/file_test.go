package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/courier/internal/errors"
)

func TestNewEncryptedFile(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV7())

	file, err := NewEncryptedFile(ownerID, "report.pdf", "blob-ref", 2048)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, file.ID)
	assert.Equal(t, ownerID, file.OwnerID)
	assert.Equal(t, "report.pdf", file.Filename)
	assert.Equal(t, "blob-ref", file.BlobRef)
	assert.Equal(t, int64(2048), file.Size)
	assert.False(t, file.Revoked)
}

func TestNewEncryptedFile_InvalidInput(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV7())

	tests := []struct {
		name     string
		ownerID  uuid.UUID
		filename string
		blobRef  string
	}{
		{"nil owner", uuid.Nil, "report.pdf", "blob-ref"},
		{"empty filename", ownerID, "", "blob-ref"},
		{"empty blob ref", ownerID, "report.pdf", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := NewEncryptedFile(tt.ownerID, tt.filename, tt.blobRef, 1)
			assert.Nil(t, file)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestEncryptedFile_Revoke(t *testing.T) {
	file, err := NewEncryptedFile(uuid.Must(uuid.NewV7()), "report.pdf", "blob-ref", 1)
	require.NoError(t, err)

	file.Revoke()
	assert.True(t, file.Revoked)
	assert.Empty(t, file.BlobRef)

	// Revoking again stays revoked
	file.Revoke()
	assert.True(t, file.Revoked)
}

func TestEncryptedFile_IsOwnedBy(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV7())
	file, err := NewEncryptedFile(ownerID, "report.pdf", "blob-ref", 1)
	require.NoError(t, err)

	assert.True(t, file.IsOwnedBy(ownerID))
	assert.False(t, file.IsOwnedBy(uuid.Must(uuid.NewV7())))
}

func TestNewAccessGrant(t *testing.T) {
	fileID := uuid.Must(uuid.NewV7())
	principalID := uuid.Must(uuid.NewV7())

	grant, err := NewAccessGrant(fileID, principalID, []byte("wrapped"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, grant.ID)
	assert.Equal(t, fileID, grant.FileID)
	assert.Equal(t, principalID, grant.PrincipalID)
	assert.Equal(t, []byte("wrapped"), grant.WrappedKey)
}

func TestNewAccessGrant_InvalidInput(t *testing.T) {
	fileID := uuid.Must(uuid.NewV7())
	principalID := uuid.Must(uuid.NewV7())

	tests := []struct {
		name        string
		fileID      uuid.UUID
		principalID uuid.UUID
		wrappedKey  []byte
	}{
		{"nil file", uuid.Nil, principalID, []byte("wrapped")},
		{"nil principal", fileID, uuid.Nil, []byte("wrapped")},
		{"empty wrapped key", fileID, principalID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := NewAccessGrant(tt.fileID, tt.principalID, tt.wrappedKey)
			assert.Nil(t, grant)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestAuditAction_Valid(t *testing.T) {
	assert.True(t, AuditActionUpload.Valid())
	assert.True(t, AuditActionDownload.Valid())
	assert.True(t, AuditActionRevoke.Valid())
	assert.False(t, AuditAction("DELETE").Valid())
	assert.False(t, AuditAction("").Valid())
}

func TestNewAuditEvent(t *testing.T) {
	fileID := uuid.Must(uuid.NewV7())
	actorID := uuid.Must(uuid.NewV7())

	event, err := NewAuditEvent(fileID, actorID, AuditActionUpload)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, fileID, event.FileID)
	assert.Equal(t, actorID, event.ActorID)
	assert.Equal(t, AuditActionUpload, event.Action)

	_, err = NewAuditEvent(fileID, actorID, AuditAction("PURGE"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = NewAuditEvent(uuid.Nil, actorID, AuditActionUpload)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
