package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/files/domain"
	"github.com/allisson/courier/internal/metrics"
)

// fileUseCaseWithMetrics decorates the file UseCase with metrics instrumentation.
type fileUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewFileUseCaseWithMetrics wraps a file UseCase with metrics recording.
func NewFileUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &fileUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Upload records metrics for upload operations.
func (f *fileUseCaseWithMetrics) Upload(ctx context.Context, input UploadInput) (*domain.EncryptedFile, error) {
	start := time.Now()
	file, err := f.next.Upload(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "upload", status)
	f.metrics.RecordDuration(ctx, "files", "upload", time.Since(start), status)

	return file, err
}

// Download records metrics for download operations.
func (f *fileUseCaseWithMetrics) Download(
	ctx context.Context,
	fileID, principalID uuid.UUID,
) (*DownloadOutput, error) {
	start := time.Now()
	output, err := f.next.Download(ctx, fileID, principalID)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "download", status)
	f.metrics.RecordDuration(ctx, "files", "download", time.Since(start), status)

	return output, err
}

// Revoke records metrics for revoke operations.
func (f *fileUseCaseWithMetrics) Revoke(ctx context.Context, fileID, actorID uuid.UUID) error {
	start := time.Now()
	err := f.next.Revoke(ctx, fileID, actorID)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "revoke", status)
	f.metrics.RecordDuration(ctx, "files", "revoke", time.Since(start), status)

	return err
}

// Get records metrics for file detail operations.
func (f *fileUseCaseWithMetrics) Get(
	ctx context.Context,
	fileID, principalID uuid.UUID,
) (*domain.EncryptedFile, error) {
	start := time.Now()
	file, err := f.next.Get(ctx, fileID, principalID)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "get", status)
	f.metrics.RecordDuration(ctx, "files", "get", time.Since(start), status)

	return file, err
}

// ListForPrincipal records metrics for file listing operations.
func (f *fileUseCaseWithMetrics) ListForPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) (*FileListing, error) {
	start := time.Now()
	listing, err := f.next.ListForPrincipal(ctx, principalID)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "list", status)
	f.metrics.RecordDuration(ctx, "files", "list", time.Since(start), status)

	return listing, err
}

// ListGrantees records metrics for grantee listing operations.
func (f *fileUseCaseWithMetrics) ListGrantees(
	ctx context.Context,
	fileID, actorID uuid.UUID,
) ([]uuid.UUID, error) {
	start := time.Now()
	granteeIDs, err := f.next.ListGrantees(ctx, fileID, actorID)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "list_grantees", status)
	f.metrics.RecordDuration(ctx, "files", "list_grantees", time.Since(start), status)

	return granteeIDs, err
}

// ListAuditEvents records metrics for audit trail listing operations.
func (f *fileUseCaseWithMetrics) ListAuditEvents(
	ctx context.Context,
	fileID, actorID uuid.UUID,
) ([]*domain.AuditEvent, error) {
	start := time.Now()
	events, err := f.next.ListAuditEvents(ctx, fileID, actorID)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "list_audit_events", status)
	f.metrics.RecordDuration(ctx, "files", "list_audit_events", time.Since(start), status)

	return events, err
}
