package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/allisson/courier/internal/database"
	apperrors "github.com/allisson/courier/internal/errors"
	"github.com/allisson/courier/internal/identity/domain"
	"github.com/allisson/courier/internal/identity/service"
	appValidation "github.com/allisson/courier/internal/validation"
)

// PrincipalUseCase handles principal-related business logic
type PrincipalUseCase struct {
	txManager      database.TxManager
	principalRepo  PrincipalRepository
	keypairs       service.KeypairProvisioner
	tokens         service.TokenService
	passwordHasher *pwdhash.PasswordHasher
}

// NewPrincipalUseCase creates a new PrincipalUseCase
func NewPrincipalUseCase(
	txManager database.TxManager,
	principalRepo PrincipalRepository,
	keypairs service.KeypairProvisioner,
	tokens service.TokenService,
) (UseCase, error) {
	// Interactive policy: these are login passwords, not batch secrets
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &PrincipalUseCase{
		txManager:      txManager,
		principalRepo:  principalRepo,
		keypairs:       keypairs,
		tokens:         tokens,
		passwordHasher: hasher,
	}, nil
}

// validateRegisterInput validates the registration input using jellydator/validation
func (uc *PrincipalUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&input.TeamName,
			validation.Length(0, 255).Error("team name must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new principal with a freshly provisioned keypair.
//
// The keypair is generated before the transaction opens; a failed insert
// discards it and the next attempt provisions a new one.
func (uc *PrincipalUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Principal, error) {
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	publicKeyPEM, privateKeyPEM, err := uc.keypairs.Provision()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to provision keypair")
	}

	principal := &domain.Principal{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash: hashedPassword,
		PublicKey:    publicKeyPEM,
		PrivateKey:   privateKeyPEM,
		TeamName:     strings.TrimSpace(input.TeamName),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.principalRepo.Create(ctx, principal)
	})
	if err != nil {
		return nil, err
	}

	return principal, nil
}

// Login verifies credentials and issues a session token.
//
// An unknown email and a wrong password both surface as ErrInvalidCredentials.
func (uc *PrincipalUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	principal, err := uc.principalRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(input.Password), principal.PasswordHash)
	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(principal.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}

	return &LoginOutput{Token: token, Principal: principal}, nil
}

// GetByID retrieves a principal by ID
func (uc *PrincipalUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Principal, error) {
	return uc.principalRepo.GetByID(ctx, id)
}

// ListTeamMembers lists the other principals on the caller's team. Principals
// without a team get an empty list.
func (uc *PrincipalUseCase) ListTeamMembers(ctx context.Context, principalID uuid.UUID) ([]*domain.Principal, error) {
	principal, err := uc.principalRepo.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	if principal.TeamName == "" {
		return nil, nil
	}

	return uc.principalRepo.ListByTeam(ctx, principal.TeamName, principal.ID)
}
