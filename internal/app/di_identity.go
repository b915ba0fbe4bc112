package app

import (
	"fmt"

	identityHTTP "github.com/allisson/courier/internal/identity/http"
	identityRepository "github.com/allisson/courier/internal/identity/repository"
	identityService "github.com/allisson/courier/internal/identity/service"
	identityUseCase "github.com/allisson/courier/internal/identity/usecase"
)

// KeypairProvisioner returns the RSA keypair provisioner used at registration.
func (c *Container) KeypairProvisioner() identityService.KeypairProvisioner {
	c.keypairProvisionerInit.Do(func() {
		c.keypairProvisioner = identityService.NewRSAKeypairProvisioner()
	})
	return c.keypairProvisioner
}

// TokenService returns the session token service.
func (c *Container) TokenService() (identityService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = identityService.NewJWTTokenService(
			c.config.JWTSecret,
			c.config.JWTExpiration,
		)
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// PrincipalRepository returns the principal repository instance.
func (c *Container) PrincipalRepository() (identityUseCase.PrincipalRepository, error) {
	var err error
	c.principalRepoInit.Do(func() {
		c.principalRepo, err = c.initPrincipalRepository()
		if err != nil {
			c.initErrors["principalRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalRepo"]; exists {
		return nil, storedErr
	}
	return c.principalRepo, nil
}

// PrincipalUseCase returns the principal use case instance.
func (c *Container) PrincipalUseCase() (identityUseCase.UseCase, error) {
	var err error
	c.principalUseCaseInit.Do(func() {
		c.principalUseCase, err = c.initPrincipalUseCase()
		if err != nil {
			c.initErrors["principalUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalUseCase"]; exists {
		return nil, storedErr
	}
	return c.principalUseCase, nil
}

// PrincipalHandler returns the principal HTTP handler.
func (c *Container) PrincipalHandler() (*identityHTTP.PrincipalHandler, error) {
	var err error
	c.principalHandlerInit.Do(func() {
		c.principalHandler, err = c.initPrincipalHandler()
		if err != nil {
			c.initErrors["principalHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalHandler"]; exists {
		return nil, storedErr
	}
	return c.principalHandler, nil
}

// initPrincipalRepository creates the principal repository instance.
func (c *Container) initPrincipalRepository() (identityUseCase.PrincipalRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for principal repository: %w", err)
	}
	return identityRepository.NewPostgreSQLPrincipalRepository(db), nil
}

// initPrincipalUseCase creates the principal use case with all its dependencies.
func (c *Container) initPrincipalUseCase() (identityUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for principal use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for principal use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for principal use case: %w", err)
	}

	useCase, err := identityUseCase.NewPrincipalUseCase(
		txManager,
		principalRepo,
		c.KeypairProvisioner(),
		tokenService,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create principal use case: %w", err)
	}

	return useCase, nil
}

// initPrincipalHandler creates the principal HTTP handler.
func (c *Container) initPrincipalHandler() (*identityHTTP.PrincipalHandler, error) {
	principalUseCase, err := c.PrincipalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal use case for principal handler: %w", err)
	}
	return identityHTTP.NewPrincipalHandler(principalUseCase, c.Logger()), nil
}
