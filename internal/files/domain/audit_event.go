package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/courier/internal/errors"
)

// AuditAction identifies the kind of recorded file operation.
type AuditAction string

// Audit actions recorded against files.
const (
	AuditActionUpload   AuditAction = "UPLOAD"
	AuditActionDownload AuditAction = "DOWNLOAD"
	AuditActionRevoke   AuditAction = "REVOKE"
)

// Valid reports whether the action is one of the known audit actions.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionUpload, AuditActionDownload, AuditActionRevoke:
		return true
	}
	return false
}

// AuditEvent is one append-only record of a file operation. Events are
// written in the same transaction as the operation they record and are never
// updated or deleted; they survive the file's revocation.
type AuditEvent struct {
	ID     uuid.UUID
	FileID uuid.UUID
	// ActorID is the principal that performed the action.
	ActorID   uuid.UUID
	Action    AuditAction
	CreatedAt time.Time
}

// NewAuditEvent creates an AuditEvent with a generated ID.
func NewAuditEvent(fileID, actorID uuid.UUID, action AuditAction) (*AuditEvent, error) {
	if fileID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "file id is required")
	}
	if actorID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "actor id is required")
	}
	if !action.Valid() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid audit action")
	}

	return &AuditEvent{
		ID:      uuid.Must(uuid.NewV7()),
		FileID:  fileID,
		ActorID: actorID,
		Action:  action,
	}, nil
}
