package app

import (
	"fmt"

	cryptoService "github.com/allisson/courier/internal/crypto/service"
	filesHTTP "github.com/allisson/courier/internal/files/http"
	filesRepository "github.com/allisson/courier/internal/files/repository"
	filesUseCase "github.com/allisson/courier/internal/files/usecase"
)

// EnvelopeEngine returns the envelope encryption engine.
func (c *Container) EnvelopeEngine() cryptoService.EnvelopeEngine {
	c.envelopeEngineInit.Do(func() {
		c.envelopeEngine = cryptoService.NewEnvelopeEngine(
			cryptoService.NewAESGCMCipher(),
			cryptoService.NewRSAKeyWrapper(),
			c.Logger(),
		)
	})
	return c.envelopeEngine
}

// FileRepository returns the encrypted file repository instance.
func (c *Container) FileRepository() (filesUseCase.FileRepository, error) {
	var err error
	c.fileRepoInit.Do(func() {
		c.fileRepo, err = c.initFileRepository()
		if err != nil {
			c.initErrors["fileRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileRepo"]; exists {
		return nil, storedErr
	}
	return c.fileRepo, nil
}

// GrantRepository returns the access grant repository instance.
func (c *Container) GrantRepository() (filesUseCase.GrantRepository, error) {
	var err error
	c.grantRepoInit.Do(func() {
		c.grantRepo, err = c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// AuditEventRepository returns the audit event repository instance.
func (c *Container) AuditEventRepository() (filesUseCase.AuditEventRepository, error) {
	var err error
	c.auditRepoInit.Do(func() {
		c.auditRepo, err = c.initAuditEventRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

// FileUseCase returns the file use case instance wrapped with business metrics.
func (c *Container) FileUseCase() (filesUseCase.UseCase, error) {
	var err error
	c.fileUseCaseInit.Do(func() {
		c.fileUseCase, err = c.initFileUseCase()
		if err != nil {
			c.initErrors["fileUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileUseCase"]; exists {
		return nil, storedErr
	}
	return c.fileUseCase, nil
}

// FileHandler returns the file HTTP handler.
func (c *Container) FileHandler() (*filesHTTP.FileHandler, error) {
	var err error
	c.fileHandlerInit.Do(func() {
		c.fileHandler, err = c.initFileHandler()
		if err != nil {
			c.initErrors["fileHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileHandler"]; exists {
		return nil, storedErr
	}
	return c.fileHandler, nil
}

// initFileRepository creates the encrypted file repository instance.
func (c *Container) initFileRepository() (filesUseCase.FileRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for file repository: %w", err)
	}
	return filesRepository.NewPostgreSQLFileRepository(db), nil
}

// initGrantRepository creates the access grant repository instance.
func (c *Container) initGrantRepository() (filesUseCase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}
	return filesRepository.NewPostgreSQLGrantRepository(db), nil
}

// initAuditEventRepository creates the audit event repository instance.
func (c *Container) initAuditEventRepository() (filesUseCase.AuditEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit event repository: %w", err)
	}
	return filesRepository.NewPostgreSQLAuditEventRepository(db), nil
}

// initFileUseCase creates the file use case with all its dependencies.
func (c *Container) initFileUseCase() (filesUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for file use case: %w", err)
	}

	fileRepo, err := c.FileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get file repository for file use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for file use case: %w", err)
	}

	auditRepo, err := c.AuditEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event repository for file use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for file use case: %w", err)
	}

	blobStore, err := c.BlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob store for file use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for file use case: %w", err)
	}

	useCase := filesUseCase.NewFileUseCase(
		txManager,
		fileRepo,
		grantRepo,
		auditRepo,
		principalRepo,
		c.EnvelopeEngine(),
		blobStore,
		c.Logger(),
	)

	return filesUseCase.NewFileUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initFileHandler creates the file HTTP handler.
func (c *Container) initFileHandler() (*filesHTTP.FileHandler, error) {
	fileUseCase, err := c.FileUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get file use case for file handler: %w", err)
	}
	return filesHTTP.NewFileHandler(fileUseCase, c.config.MaxUploadBytes, c.Logger()), nil
}
