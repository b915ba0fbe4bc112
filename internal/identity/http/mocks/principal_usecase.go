// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/courier/internal/identity/domain"
	"github.com/allisson/courier/internal/identity/usecase"
)

// MockPrincipalUseCase is a mock implementation of the principal UseCase for testing.
type MockPrincipalUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockPrincipalUseCase) Register(
	ctx context.Context,
	input usecase.RegisterInput,
) (*domain.Principal, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

// Login mocks the Login method.
func (m *MockPrincipalUseCase) Login(
	ctx context.Context,
	input usecase.LoginInput,
) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

// GetByID mocks the GetByID method.
func (m *MockPrincipalUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

// ListTeamMembers mocks the ListTeamMembers method.
func (m *MockPrincipalUseCase) ListTeamMembers(
	ctx context.Context,
	principalID uuid.UUID,
) ([]*domain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Principal), args.Error(1)
}
