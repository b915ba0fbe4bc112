// Package storage provides the opaque blob store holding encrypted file
// contents. The rest of the application treats blobs as path-keyed bytes and
// never interprets them; all failures surface as ErrStorageFailure.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/allisson/courier/internal/errors"

	// Register blob storage drivers
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// ErrStorageFailure indicates the blob store collaborator failed (missing
// object, I/O error). Retried by caller policy, never by this package.
var ErrStorageFailure = apperrors.Wrap(apperrors.ErrUnavailable, "storage failure")

// BlobStore persists opaque ciphertext blobs keyed by an opaque reference.
type BlobStore interface {
	// Put stores data and returns the reference under which it was stored.
	Put(ctx context.Context, data []byte) (string, error)

	// Get returns the bytes stored under ref.
	Get(ctx context.Context, ref string) ([]byte, error)

	// Delete removes the blob stored under ref. Deleting a missing blob is
	// not an error so that revocation stays idempotent.
	Delete(ctx context.Context, ref string) error
}

// bucketBlobStore implements BlobStore on top of a gocloud.dev bucket.
// Supports: file://, mem://, s3://
type bucketBlobStore struct {
	bucket *blob.Bucket
}

// OpenBucket opens the gocloud.dev bucket for the configured URL.
func OpenBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob bucket: %w", err)
	}
	return bucket, nil
}

// NewBucketBlobStore creates a BlobStore backed by the given bucket.
func NewBucketBlobStore(bucket *blob.Bucket) BlobStore {
	return &bucketBlobStore{bucket: bucket}
}

// Put stores data under a fresh random key so that stored names leak nothing
// about the original filename.
func (b *bucketBlobStore) Put(ctx context.Context, data []byte) (string, error) {
	ref := uuid.Must(uuid.NewV7()).String()

	if err := b.bucket.WriteAll(ctx, ref, data, nil); err != nil {
		return "", apperrors.Wrap(ErrStorageFailure, err.Error())
	}

	return ref, nil
}

// Get returns the bytes stored under ref.
func (b *bucketBlobStore) Get(ctx context.Context, ref string) ([]byte, error) {
	data, err := b.bucket.ReadAll(ctx, ref)
	if err != nil {
		return nil, apperrors.Wrap(ErrStorageFailure, err.Error())
	}
	return data, nil
}

// Delete removes the blob stored under ref.
func (b *bucketBlobStore) Delete(ctx context.Context, ref string) error {
	if err := b.bucket.Delete(ctx, ref); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}
		return apperrors.Wrap(ErrStorageFailure, err.Error())
	}
	return nil
}
