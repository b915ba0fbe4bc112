package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	apperrors "github.com/allisson/courier/internal/errors"
)

func TestBucketBlobStore_PutAndGet(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer func() { _ = bucket.Close() }()

	store := NewBucketBlobStore(bucket)

	data := []byte("opaque ciphertext bytes")
	ref, err := store.Put(ctx, data)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	got, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestBucketBlobStore_PutGeneratesUniqueReferences(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer func() { _ = bucket.Close() }()

	store := NewBucketBlobStore(bucket)

	ref1, err := store.Put(ctx, []byte("same content"))
	require.NoError(t, err)
	ref2, err := store.Put(ctx, []byte("same content"))
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)
}

func TestBucketBlobStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer func() { _ = bucket.Close() }()

	store := NewBucketBlobStore(bucket)

	_, err := store.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

func TestBucketBlobStore_Delete(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer func() { _ = bucket.Close() }()

	store := NewBucketBlobStore(bucket)

	ref, err := store.Put(ctx, []byte("to be deleted"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, ref))

	_, err = store.Get(ctx, ref)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)

	// Deleting an already-deleted blob is a no-op
	assert.NoError(t, store.Delete(ctx, ref))
}
