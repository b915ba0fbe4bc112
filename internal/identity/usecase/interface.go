// Package usecase implements the principal business logic: registration with
// keypair provisioning, login, and team member listing.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/courier/internal/identity/domain"
)

// RegisterInput contains the input data for principal registration
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TeamName string `json:"team_name"`
}

// LoginInput contains the input data for login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginOutput carries the session token issued on a successful login
type LoginOutput struct {
	Token     string
	Principal *domain.Principal
}

// UseCase defines the interface for principal business logic operations
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Principal, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	ListTeamMembers(ctx context.Context, principalID uuid.UUID) ([]*domain.Principal, error)
}

// PrincipalRepository interface defines principal repository operations
type PrincipalRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
	ListByTeam(ctx context.Context, teamName string, excludeID uuid.UUID) ([]*domain.Principal, error)
}
