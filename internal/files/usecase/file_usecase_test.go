package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	cryptoDomain "github.com/allisson/courier/internal/crypto/domain"
	cryptoService "github.com/allisson/courier/internal/crypto/service"
	apperrors "github.com/allisson/courier/internal/errors"
	"github.com/allisson/courier/internal/files/domain"
	identityDomain "github.com/allisson/courier/internal/identity/domain"
	identityService "github.com/allisson/courier/internal/identity/service"
	"github.com/allisson/courier/internal/storage"
)

// fakeTxManager runs the callback directly; the repositories it wraps are in
// memory and need no real transaction.
type fakeTxManager struct{}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeFileRepo struct {
	files      map[uuid.UUID]*domain.EncryptedFile
	grants     *fakeGrantRepo
	createErr  error
	createdIDs []uuid.UUID
}

func newFakeFileRepo(grants *fakeGrantRepo) *fakeFileRepo {
	return &fakeFileRepo{files: make(map[uuid.UUID]*domain.EncryptedFile), grants: grants}
}

func (f *fakeFileRepo) Create(ctx context.Context, file *domain.EncryptedFile) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *file
	f.files[file.ID] = &copied
	f.createdIDs = append(f.createdIDs, file.ID)
	return nil
}

func (f *fakeFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EncryptedFile, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	copied := *file
	return &copied, nil
}

func (f *fakeFileRepo) Update(ctx context.Context, file *domain.EncryptedFile) error {
	if _, ok := f.files[file.ID]; !ok {
		return domain.ErrFileNotFound
	}
	copied := *file
	f.files[file.ID] = &copied
	return nil
}

func (f *fakeFileRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.EncryptedFile, error) {
	var files []*domain.EncryptedFile
	for _, id := range f.createdIDs {
		file, ok := f.files[id]
		if ok && file.OwnerID == ownerID {
			copied := *file
			files = append(files, &copied)
		}
	}
	return files, nil
}

func (f *fakeFileRepo) ListSharedWith(ctx context.Context, principalID uuid.UUID) ([]*domain.EncryptedFile, error) {
	var files []*domain.EncryptedFile
	for _, id := range f.createdIDs {
		file, ok := f.files[id]
		if !ok || file.OwnerID == principalID || file.Revoked {
			continue
		}
		if _, err := f.grants.Get(ctx, file.ID, principalID); err == nil {
			copied := *file
			files = append(files, &copied)
		}
	}
	return files, nil
}

type fakeGrantRepo struct {
	grants map[uuid.UUID]map[uuid.UUID]*domain.AccessGrant
}

func newFakeGrantRepo() *fakeGrantRepo {
	return &fakeGrantRepo{grants: make(map[uuid.UUID]map[uuid.UUID]*domain.AccessGrant)}
}

func (f *fakeGrantRepo) Create(ctx context.Context, grant *domain.AccessGrant) error {
	if f.grants[grant.FileID] == nil {
		f.grants[grant.FileID] = make(map[uuid.UUID]*domain.AccessGrant)
	}
	f.grants[grant.FileID][grant.PrincipalID] = grant
	return nil
}

func (f *fakeGrantRepo) Get(ctx context.Context, fileID, principalID uuid.UUID) (*domain.AccessGrant, error) {
	grant, ok := f.grants[fileID][principalID]
	if !ok {
		return nil, domain.ErrGrantNotFound
	}
	return grant, nil
}

func (f *fakeGrantRepo) ListGranteeIDs(ctx context.Context, fileID uuid.UUID) ([]uuid.UUID, error) {
	var granteeIDs []uuid.UUID
	for principalID := range f.grants[fileID] {
		granteeIDs = append(granteeIDs, principalID)
	}
	return granteeIDs, nil
}

func (f *fakeGrantRepo) DeleteAllForFile(ctx context.Context, fileID uuid.UUID) error {
	delete(f.grants, fileID)
	return nil
}

type fakeAuditRepo struct {
	events    []*domain.AuditEvent
	createErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, event *domain.AuditEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditRepo) ListForFile(ctx context.Context, fileID uuid.UUID) ([]*domain.AuditEvent, error) {
	var events []*domain.AuditEvent
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].FileID == fileID {
			events = append(events, f.events[i])
		}
	}
	return events, nil
}

type fakePrincipalDirectory struct {
	principals map[uuid.UUID]*identityDomain.Principal
}

func (f *fakePrincipalDirectory) GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.Principal, error) {
	principal, ok := f.principals[id]
	if !ok {
		return nil, identityDomain.ErrPrincipalNotFound
	}
	return principal, nil
}

// trackingBlobStore wraps a BlobStore and records puts and deletes.
type trackingBlobStore struct {
	storage.BlobStore
	putRefs    []string
	deleteRefs []string
}

func (t *trackingBlobStore) Put(ctx context.Context, data []byte) (string, error) {
	ref, err := t.BlobStore.Put(ctx, data)
	if err == nil {
		t.putRefs = append(t.putRefs, ref)
	}
	return ref, err
}

func (t *trackingBlobStore) Delete(ctx context.Context, ref string) error {
	err := t.BlobStore.Delete(ctx, ref)
	if err == nil {
		t.deleteRefs = append(t.deleteRefs, ref)
	}
	return err
}

type fixture struct {
	useCase   UseCase
	fileRepo  *fakeFileRepo
	grantRepo *fakeGrantRepo
	auditRepo *fakeAuditRepo
	directory *fakePrincipalDirectory
	blobs     *trackingBlobStore
}

func newFixture(t *testing.T, principals ...*identityDomain.Principal) *fixture {
	t.Helper()

	grantRepo := newFakeGrantRepo()
	fileRepo := newFakeFileRepo(grantRepo)
	auditRepo := &fakeAuditRepo{}
	directory := &fakePrincipalDirectory{principals: make(map[uuid.UUID]*identityDomain.Principal)}
	for _, principal := range principals {
		directory.principals[principal.ID] = principal
	}

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	blobs := &trackingBlobStore{BlobStore: storage.NewBucketBlobStore(bucket)}

	engine := cryptoService.NewEnvelopeEngine(
		cryptoService.NewAESGCMCipher(),
		cryptoService.NewRSAKeyWrapper(),
		slog.Default(),
	)

	useCase := NewFileUseCase(
		&fakeTxManager{}, fileRepo, grantRepo, auditRepo, directory, engine, blobs, slog.Default(),
	)

	return &fixture{
		useCase:   useCase,
		fileRepo:  fileRepo,
		grantRepo: grantRepo,
		auditRepo: auditRepo,
		directory: directory,
		blobs:     blobs,
	}
}

func newPrincipal(t *testing.T, email string) *identityDomain.Principal {
	t.Helper()

	publicKeyPEM, privateKeyPEM, err := identityService.NewRSAKeypairProvisioner().Provision()
	require.NoError(t, err)

	return &identityDomain.Principal{
		ID:         uuid.Must(uuid.NewV7()),
		Email:      email,
		PublicKey:  publicKeyPEM,
		PrivateKey: privateKeyPEM,
	}
}

func TestFileUseCase_UploadAndDownload(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	alice := newPrincipal(t, "alice@example.com")
	fx := newFixture(t, owner, alice)
	ctx := context.Background()
	content := []byte("quarterly report contents")

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      content,
		RecipientIDs: []uuid.UUID{alice.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, file.OwnerID)
	assert.Equal(t, int64(len(content)), file.Size)

	// Owner and recipient both hold grants
	_, err = fx.grantRepo.Get(ctx, file.ID, owner.ID)
	assert.NoError(t, err)
	_, err = fx.grantRepo.Get(ctx, file.ID, alice.ID)
	assert.NoError(t, err)

	// The stored blob never contains the plaintext
	blob, err := fx.blobs.Get(ctx, file.BlobRef)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "quarterly")

	// Both grantees can download
	for _, principal := range []*identityDomain.Principal{owner, alice} {
		output, err := fx.useCase.Download(ctx, file.ID, principal.ID)
		require.NoError(t, err, principal.Email)
		assert.Equal(t, content, output.Plaintext)
		assert.Equal(t, "report.pdf", output.Filename)
	}

	// Audit trail: newest first, downloads after the upload
	events, err := fx.useCase.ListAuditEvents(ctx, file.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.AuditActionDownload, events[0].Action)
	assert.Equal(t, domain.AuditActionDownload, events[1].Action)
	assert.Equal(t, domain.AuditActionUpload, events[2].Action)
}

func TestFileUseCase_Upload_UnknownRecipient(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	fx := newFixture(t, owner)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      []byte("content"),
		RecipientIDs: []uuid.UUID{uuid.Must(uuid.NewV7())},
	})

	assert.Nil(t, file)
	assert.True(t, apperrors.Is(err, domain.ErrInvalidRecipient))

	// Nothing was persisted
	assert.Empty(t, fx.fileRepo.files)
	assert.Empty(t, fx.grantRepo.grants)
	assert.Empty(t, fx.auditRepo.events)
	assert.Empty(t, fx.blobs.putRefs)
}

func TestFileUseCase_Upload_InvalidInput(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	fx := newFixture(t, owner)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"empty filename", "", []byte("content")},
		{"path traversal filename", "../secrets.txt", []byte("content")},
		{"empty content", "report.pdf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := fx.useCase.Upload(ctx, UploadInput{
				OwnerID:  owner.ID,
				Filename: tt.filename,
				Content:  tt.content,
			})
			assert.Nil(t, file)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestFileUseCase_Upload_BlobCleanupOnTxFailure(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	fx := newFixture(t, owner)
	ctx := context.Background()

	fx.fileRepo.createErr = assert.AnError

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:  owner.ID,
		Filename: "report.pdf",
		Content:  []byte("content"),
	})

	assert.Nil(t, file)
	assert.Error(t, err)

	// The blob written before the transaction was removed again
	require.Len(t, fx.blobs.putRefs, 1)
	assert.Equal(t, fx.blobs.putRefs, fx.blobs.deleteRefs)
}

func TestFileUseCase_Download_NonGrantee(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	mallory := newPrincipal(t, "mallory@example.com")
	fx := newFixture(t, owner, mallory)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:  owner.ID,
		Filename: "report.pdf",
		Content:  []byte("secret"),
	})
	require.NoError(t, err)

	output, err := fx.useCase.Download(ctx, file.ID, mallory.ID)
	assert.Nil(t, output)
	assert.True(t, apperrors.Is(err, cryptoDomain.ErrAccessDenied))

	// Denied attempts leave no download audit record
	events, err := fx.useCase.ListAuditEvents(ctx, file.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.AuditActionUpload, events[0].Action)
}

func TestFileUseCase_Download_MissingFile(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	fx := newFixture(t, owner)

	output, err := fx.useCase.Download(context.Background(), uuid.Must(uuid.NewV7()), owner.ID)
	assert.Nil(t, output)
	assert.True(t, apperrors.Is(err, domain.ErrFileNotFound))
}

func TestFileUseCase_Download_AuditWriteFailure(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	fx := newFixture(t, owner)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:  owner.ID,
		Filename: "report.pdf",
		Content:  []byte("content"),
	})
	require.NoError(t, err)

	// If the DOWNLOAD event cannot be recorded, no plaintext is returned
	fx.auditRepo.createErr = assert.AnError

	output, err := fx.useCase.Download(ctx, file.ID, owner.ID)
	assert.Nil(t, output)
	assert.Error(t, err)
}

func TestFileUseCase_Revoke(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	alice := newPrincipal(t, "alice@example.com")
	fx := newFixture(t, owner, alice)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      []byte("content"),
		RecipientIDs: []uuid.UUID{alice.ID},
	})
	require.NoError(t, err)
	blobRef := file.BlobRef

	require.NoError(t, fx.useCase.Revoke(ctx, file.ID, owner.ID))

	// All grants destroyed, file flagged, blob gone
	_, err = fx.grantRepo.Get(ctx, file.ID, owner.ID)
	assert.True(t, apperrors.Is(err, domain.ErrGrantNotFound))
	_, err = fx.grantRepo.Get(ctx, file.ID, alice.ID)
	assert.True(t, apperrors.Is(err, domain.ErrGrantNotFound))

	revoked, err := fx.fileRepo.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.True(t, revoked.Revoked)
	assert.Empty(t, revoked.BlobRef)
	assert.Contains(t, fx.blobs.deleteRefs, blobRef)

	// Every former grantee is locked out, owner included
	for _, principal := range []*identityDomain.Principal{owner, alice} {
		output, err := fx.useCase.Download(ctx, file.ID, principal.ID)
		assert.Nil(t, output)
		assert.True(t, apperrors.Is(err, cryptoDomain.ErrAccessDenied), principal.Email)
	}

	// Audit trail survives revocation: REVOKE then UPLOAD, newest first
	events, err := fx.useCase.ListAuditEvents(ctx, file.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.AuditActionRevoke, events[0].Action)
	assert.Equal(t, domain.AuditActionUpload, events[1].Action)
}

func TestFileUseCase_Revoke_NonOwner(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	alice := newPrincipal(t, "alice@example.com")
	fx := newFixture(t, owner, alice)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      []byte("content"),
		RecipientIDs: []uuid.UUID{alice.ID},
	})
	require.NoError(t, err)

	// A grantee cannot revoke, only the owner can
	err = fx.useCase.Revoke(ctx, file.ID, alice.ID)
	assert.True(t, apperrors.Is(err, domain.ErrNotFileOwner))

	// Grants remain intact
	_, err = fx.grantRepo.Get(ctx, file.ID, alice.ID)
	assert.NoError(t, err)
}

func TestFileUseCase_Revoke_Idempotent(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	fx := newFixture(t, owner)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:  owner.ID,
		Filename: "report.pdf",
		Content:  []byte("content"),
	})
	require.NoError(t, err)

	require.NoError(t, fx.useCase.Revoke(ctx, file.ID, owner.ID))
	require.NoError(t, fx.useCase.Revoke(ctx, file.ID, owner.ID))

	// Only one REVOKE event recorded
	events, err := fx.useCase.ListAuditEvents(ctx, file.ID, owner.ID)
	require.NoError(t, err)

	revokes := 0
	for _, event := range events {
		if event.Action == domain.AuditActionRevoke {
			revokes++
		}
	}
	assert.Equal(t, 1, revokes)
}

func TestFileUseCase_Get_Visibility(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	alice := newPrincipal(t, "alice@example.com")
	mallory := newPrincipal(t, "mallory@example.com")
	fx := newFixture(t, owner, alice, mallory)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      []byte("content"),
		RecipientIDs: []uuid.UUID{alice.ID},
	})
	require.NoError(t, err)

	_, err = fx.useCase.Get(ctx, file.ID, owner.ID)
	assert.NoError(t, err)
	_, err = fx.useCase.Get(ctx, file.ID, alice.ID)
	assert.NoError(t, err)

	// A non-party cannot even confirm the file exists
	got, err := fx.useCase.Get(ctx, file.ID, mallory.ID)
	assert.Nil(t, got)
	assert.True(t, apperrors.Is(err, domain.ErrFileNotFound))
}

func TestFileUseCase_ListForPrincipal(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	alice := newPrincipal(t, "alice@example.com")
	fx := newFixture(t, owner, alice)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      []byte("content"),
		RecipientIDs: []uuid.UUID{alice.ID},
	})
	require.NoError(t, err)

	ownerListing, err := fx.useCase.ListForPrincipal(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, ownerListing.Owned, 1)
	assert.Empty(t, ownerListing.Shared)

	aliceListing, err := fx.useCase.ListForPrincipal(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceListing.Owned)
	assert.Len(t, aliceListing.Shared, 1)

	// Revoked files drop out of the shared listing
	require.NoError(t, fx.useCase.Revoke(ctx, file.ID, owner.ID))

	aliceListing, err = fx.useCase.ListForPrincipal(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceListing.Shared)
}

func TestFileUseCase_ListGrantees(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	alice := newPrincipal(t, "alice@example.com")
	fx := newFixture(t, owner, alice)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      []byte("content"),
		RecipientIDs: []uuid.UUID{alice.ID},
	})
	require.NoError(t, err)

	granteeIDs, err := fx.useCase.ListGrantees(ctx, file.ID, owner.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{owner.ID, alice.ID}, granteeIDs)

	// Grantees cannot enumerate the grant list
	_, err = fx.useCase.ListGrantees(ctx, file.ID, alice.ID)
	assert.True(t, apperrors.Is(err, domain.ErrNotFileOwner))
}

func TestFileUseCase_ListAuditEvents_OwnerOnly(t *testing.T) {
	owner := newPrincipal(t, "owner@example.com")
	alice := newPrincipal(t, "alice@example.com")
	fx := newFixture(t, owner, alice)
	ctx := context.Background()

	file, err := fx.useCase.Upload(ctx, UploadInput{
		OwnerID:      owner.ID,
		Filename:     "report.pdf",
		Content:      []byte("content"),
		RecipientIDs: []uuid.UUID{alice.ID},
	})
	require.NoError(t, err)

	_, err = fx.useCase.ListAuditEvents(ctx, file.ID, alice.ID)
	assert.True(t, apperrors.Is(err, domain.ErrNotFileOwner))
}
