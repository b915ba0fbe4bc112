// Package usecase implements the file sharing business logic: envelope
// encrypted upload, grant checked download, and revocation.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/files/domain"
	identityDomain "github.com/allisson/courier/internal/identity/domain"
)

// UploadInput contains the input data for a file upload
type UploadInput struct {
	OwnerID      uuid.UUID
	Filename     string
	Content      []byte
	RecipientIDs []uuid.UUID
}

// DownloadOutput carries the decrypted file returned to an authorized caller
type DownloadOutput struct {
	Filename  string
	Plaintext []byte
}

// FileListing groups the files visible to a principal
type FileListing struct {
	Owned  []*domain.EncryptedFile
	Shared []*domain.EncryptedFile
}

// UseCase defines the interface for file business logic operations
type UseCase interface {
	Upload(ctx context.Context, input UploadInput) (*domain.EncryptedFile, error)
	Download(ctx context.Context, fileID, principalID uuid.UUID) (*DownloadOutput, error)
	Revoke(ctx context.Context, fileID, actorID uuid.UUID) error
	Get(ctx context.Context, fileID, principalID uuid.UUID) (*domain.EncryptedFile, error)
	ListForPrincipal(ctx context.Context, principalID uuid.UUID) (*FileListing, error)
	ListGrantees(ctx context.Context, fileID, actorID uuid.UUID) ([]uuid.UUID, error)
	ListAuditEvents(ctx context.Context, fileID, actorID uuid.UUID) ([]*domain.AuditEvent, error)
}

// FileRepository interface defines encrypted file repository operations
type FileRepository interface {
	Create(ctx context.Context, file *domain.EncryptedFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EncryptedFile, error)
	Update(ctx context.Context, file *domain.EncryptedFile) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.EncryptedFile, error)
	ListSharedWith(ctx context.Context, principalID uuid.UUID) ([]*domain.EncryptedFile, error)
}

// GrantRepository interface defines access grant repository operations
type GrantRepository interface {
	Create(ctx context.Context, grant *domain.AccessGrant) error
	Get(ctx context.Context, fileID, principalID uuid.UUID) (*domain.AccessGrant, error)
	ListGranteeIDs(ctx context.Context, fileID uuid.UUID) ([]uuid.UUID, error)
	DeleteAllForFile(ctx context.Context, fileID uuid.UUID) error
}

// AuditEventRepository interface defines append-only audit event operations
type AuditEventRepository interface {
	Create(ctx context.Context, event *domain.AuditEvent) error
	ListForFile(ctx context.Context, fileID uuid.UUID) ([]*domain.AuditEvent, error)
}

// PrincipalDirectory resolves principals for key wrapping and unwrapping
type PrincipalDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.Principal, error)
}
