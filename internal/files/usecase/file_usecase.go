package usecase

import (
	"context"
	"log/slog"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/courier/internal/crypto/domain"
	cryptoService "github.com/allisson/courier/internal/crypto/service"
	"github.com/allisson/courier/internal/database"
	apperrors "github.com/allisson/courier/internal/errors"
	"github.com/allisson/courier/internal/files/domain"
	identityDomain "github.com/allisson/courier/internal/identity/domain"
	"github.com/allisson/courier/internal/storage"
	appValidation "github.com/allisson/courier/internal/validation"
)

// FileUseCase handles file-related business logic
type FileUseCase struct {
	txManager  database.TxManager
	fileRepo   FileRepository
	grantRepo  GrantRepository
	auditRepo  AuditEventRepository
	principals PrincipalDirectory
	engine     cryptoService.EnvelopeEngine
	blobs      storage.BlobStore
	logger     *slog.Logger
}

// NewFileUseCase creates a new FileUseCase
func NewFileUseCase(
	txManager database.TxManager,
	fileRepo FileRepository,
	grantRepo GrantRepository,
	auditRepo AuditEventRepository,
	principals PrincipalDirectory,
	engine cryptoService.EnvelopeEngine,
	blobs storage.BlobStore,
	logger *slog.Logger,
) UseCase {
	return &FileUseCase{
		txManager:  txManager,
		fileRepo:   fileRepo,
		grantRepo:  grantRepo,
		auditRepo:  auditRepo,
		principals: principals,
		engine:     engine,
		blobs:      blobs,
		logger:     logger,
	}
}

// validateUploadInput validates the upload input using jellydator/validation
func (uc *FileUseCase) validateUploadInput(input UploadInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Filename,
			validation.Required.Error("filename is required"),
			appValidation.NotBlank,
			appValidation.Filename,
			validation.Length(1, 255).Error("filename must be between 1 and 255 characters"),
		),
		validation.Field(&input.Content,
			validation.Required.Error("content is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Upload encrypts content once and fans out a wrapped key grant to the owner
// and every named recipient.
//
// Recipients are resolved before anything is persisted: one unknown
// recipient fails the whole upload with ErrInvalidRecipient and leaves no
// file, grant, blob, or audit record behind. The grant rows, the file row,
// and the UPLOAD audit event commit in one transaction; the ciphertext blob
// is written first and deleted again if that transaction fails.
func (uc *FileUseCase) Upload(ctx context.Context, input UploadInput) (*domain.EncryptedFile, error) {
	if err := uc.validateUploadInput(input); err != nil {
		return nil, err
	}

	owner, err := uc.principals.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	recipients := make([]*identityDomain.Principal, 0, len(input.RecipientIDs))
	for _, recipientID := range input.RecipientIDs {
		recipient, err := uc.principals.GetByID(ctx, recipientID)
		if err != nil {
			if apperrors.Is(err, identityDomain.ErrPrincipalNotFound) {
				return nil, apperrors.Wrap(domain.ErrInvalidRecipient, recipientID.String())
			}
			return nil, err
		}
		recipients = append(recipients, recipient)
	}

	blob, wrappedKeys, err := uc.engine.EncryptForRecipients(input.Content, owner, recipients)
	if err != nil {
		return nil, err
	}

	blobRef, err := uc.blobs.Put(ctx, blob)
	if err != nil {
		return nil, err
	}

	file, err := domain.NewEncryptedFile(owner.ID, input.Filename, blobRef, int64(len(input.Content)))
	if err != nil {
		return nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.fileRepo.Create(ctx, file); err != nil {
			return err
		}

		for principalID, wrappedKey := range wrappedKeys {
			grant, err := domain.NewAccessGrant(file.ID, principalID, wrappedKey)
			if err != nil {
				return err
			}
			if err := uc.grantRepo.Create(ctx, grant); err != nil {
				return err
			}
		}

		event, err := domain.NewAuditEvent(file.ID, owner.ID, domain.AuditActionUpload)
		if err != nil {
			return err
		}
		return uc.auditRepo.Create(ctx, event)
	})
	if err != nil {
		// The blob was written outside the transaction; clean it up so a
		// failed upload leaves no ciphertext behind
		if deleteErr := uc.blobs.Delete(ctx, blobRef); deleteErr != nil {
			uc.logger.Error("failed to delete blob after rolled back upload",
				slog.String("blob_ref", blobRef),
				slog.Any("error", deleteErr),
			)
		}
		return nil, err
	}

	return file, nil
}

// Download returns the decrypted plaintext for a principal holding a grant.
//
// Missing grants, revoked files, and key material that fails to unwrap or
// authenticate all surface as the same ErrAccessDenied. The DOWNLOAD audit
// event is committed before any plaintext is returned; if that write fails,
// the caller gets an error and no content.
func (uc *FileUseCase) Download(ctx context.Context, fileID, principalID uuid.UUID) (*DownloadOutput, error) {
	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if file.Revoked {
		return nil, cryptoDomain.ErrAccessDenied
	}

	grant, err := uc.grantRepo.Get(ctx, fileID, principalID)
	if err != nil {
		if apperrors.Is(err, domain.ErrGrantNotFound) {
			return nil, cryptoDomain.ErrAccessDenied
		}
		return nil, err
	}

	// The private key is loaded here, at the unwrap moment, and nowhere else
	principal, err := uc.principals.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	blob, err := uc.blobs.Get(ctx, file.BlobRef)
	if err != nil {
		return nil, err
	}

	plaintext, err := uc.engine.DecryptForPrincipal(blob, grant.WrappedKey, principal)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		event, err := domain.NewAuditEvent(file.ID, principalID, domain.AuditActionDownload)
		if err != nil {
			return err
		}
		return uc.auditRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	return &DownloadOutput{Filename: file.Filename, Plaintext: plaintext}, nil
}

// Revoke destroys a file's ciphertext and every grant for it.
//
// Only the owner may revoke; revoking an already revoked file succeeds
// without side effects. The grant deletion, the revoked flag, and the REVOKE
// audit event commit in one transaction, so no observer sees a partially
// revoked file. The blob is deleted after the commit: if that delete fails,
// the file is already logically unreachable and the orphan is only logged.
func (uc *FileUseCase) Revoke(ctx context.Context, fileID, actorID uuid.UUID) error {
	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if !file.IsOwnedBy(actorID) {
		return domain.ErrNotFileOwner
	}

	if file.Revoked {
		return nil
	}

	blobRef := file.BlobRef

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.grantRepo.DeleteAllForFile(ctx, file.ID); err != nil {
			return err
		}

		file.Revoke()
		if err := uc.fileRepo.Update(ctx, file); err != nil {
			return err
		}

		event, err := domain.NewAuditEvent(file.ID, actorID, domain.AuditActionRevoke)
		if err != nil {
			return err
		}
		return uc.auditRepo.Create(ctx, event)
	})
	if err != nil {
		return err
	}

	if err := uc.blobs.Delete(ctx, blobRef); err != nil {
		uc.logger.Error("failed to delete blob for revoked file",
			slog.String("file_id", file.ID.String()),
			slog.String("blob_ref", blobRef),
			slog.Any("error", err),
		)
	}

	return nil
}

// Get retrieves file metadata for the owner or a grant holder. Anyone else
// gets ErrFileNotFound, so non-parties cannot confirm the file exists.
func (uc *FileUseCase) Get(ctx context.Context, fileID, principalID uuid.UUID) (*domain.EncryptedFile, error) {
	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if file.IsOwnedBy(principalID) {
		return file, nil
	}

	if _, err := uc.grantRepo.Get(ctx, fileID, principalID); err != nil {
		if apperrors.Is(err, domain.ErrGrantNotFound) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}

	return file, nil
}

// ListForPrincipal retrieves the files a principal owns and the non-revoked
// files shared with them
func (uc *FileUseCase) ListForPrincipal(ctx context.Context, principalID uuid.UUID) (*FileListing, error) {
	owned, err := uc.fileRepo.ListByOwner(ctx, principalID)
	if err != nil {
		return nil, err
	}

	shared, err := uc.fileRepo.ListSharedWith(ctx, principalID)
	if err != nil {
		return nil, err
	}

	return &FileListing{Owned: owned, Shared: shared}, nil
}

// ListGrantees retrieves the grant holders for a file. Owner only.
func (uc *FileUseCase) ListGrantees(ctx context.Context, fileID, actorID uuid.UUID) ([]uuid.UUID, error) {
	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !file.IsOwnedBy(actorID) {
		return nil, domain.ErrNotFileOwner
	}

	return uc.grantRepo.ListGranteeIDs(ctx, fileID)
}

// ListAuditEvents retrieves the audit trail for a file. Owner only; the
// trail survives revocation.
func (uc *FileUseCase) ListAuditEvents(ctx context.Context, fileID, actorID uuid.UUID) ([]*domain.AuditEvent, error) {
	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !file.IsOwnedBy(actorID) {
		return nil, domain.ErrNotFileOwner
	}

	return uc.auditRepo.ListForFile(ctx, fileID)
}
