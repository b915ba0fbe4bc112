// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/courier/internal/files/domain"
	"github.com/allisson/courier/internal/files/usecase"
)

// MockFileUseCase is a mock implementation of the file UseCase for testing.
type MockFileUseCase struct {
	mock.Mock
}

// Upload mocks the Upload method.
func (m *MockFileUseCase) Upload(
	ctx context.Context,
	input usecase.UploadInput,
) (*domain.EncryptedFile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EncryptedFile), args.Error(1)
}

// Download mocks the Download method.
func (m *MockFileUseCase) Download(
	ctx context.Context,
	fileID, principalID uuid.UUID,
) (*usecase.DownloadOutput, error) {
	args := m.Called(ctx, fileID, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DownloadOutput), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockFileUseCase) Revoke(ctx context.Context, fileID, actorID uuid.UUID) error {
	args := m.Called(ctx, fileID, actorID)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockFileUseCase) Get(
	ctx context.Context,
	fileID, principalID uuid.UUID,
) (*domain.EncryptedFile, error) {
	args := m.Called(ctx, fileID, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EncryptedFile), args.Error(1)
}

// ListForPrincipal mocks the ListForPrincipal method.
func (m *MockFileUseCase) ListForPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) (*usecase.FileListing, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.FileListing), args.Error(1)
}

// ListGrantees mocks the ListGrantees method.
func (m *MockFileUseCase) ListGrantees(
	ctx context.Context,
	fileID, actorID uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, fileID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// ListAuditEvents mocks the ListAuditEvents method.
func (m *MockFileUseCase) ListAuditEvents(
	ctx context.Context,
	fileID, actorID uuid.UUID,
) ([]*domain.AuditEvent, error) {
	args := m.Called(ctx, fileID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditEvent), args.Error(1)
}
