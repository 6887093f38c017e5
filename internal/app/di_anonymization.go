package app

import (
	"fmt"

	anonymizationHTTP "github.com/allisson/anonymizer/internal/anonymization/http"
	anonymizationRepository "github.com/allisson/anonymizer/internal/anonymization/repository"
	anonymizationMySQL "github.com/allisson/anonymizer/internal/anonymization/repository/mysql"
	anonymizationService "github.com/allisson/anonymizer/internal/anonymization/service"
	anonymizationUseCase "github.com/allisson/anonymizer/internal/anonymization/usecase"
	"github.com/allisson/anonymizer/internal/database"
)

// AnonymizationUseCase returns the anonymization orchestrator.
func (c *Container) AnonymizationUseCase() (anonymizationUseCase.AnonymizationUseCase, error) {
	return resolve(c, &c.anonymizationUseCaseInit, "anonymizationUseCase", &c.anonymizationUseCase, c.initAnonymizationUseCase)
}

// MappingRepository returns the audit mapping repository based on database driver.
func (c *Container) MappingRepository() (anonymizationUseCase.MappingRepository, error) {
	return resolve(c, &c.mappingRepositoryInit, "mappingRepository", &c.mappingRepository, c.initMappingRepository)
}

// AuditUseCase returns the audit use case, or nil when the audit store is disabled.
func (c *Container) AuditUseCase() (anonymizationUseCase.AuditUseCase, error) {
	return resolve(c, &c.auditUseCaseInit, "auditUseCase", &c.auditUseCase, c.initAuditUseCase)
}

// AnonymizationHandler returns the HTTP handler for anonymize requests.
func (c *Container) AnonymizationHandler() (*anonymizationHTTP.AnonymizationHandler, error) {
	return resolve(c, &c.anonymizationHandlerInit, "anonymizationHandler", &c.anonymizationHandler, c.initAnonymizationHandler)
}

// AuditHandler returns the HTTP handler for run lookups, or nil when the audit
// store is disabled.
func (c *Container) AuditHandler() (*anonymizationHTTP.AuditHandler, error) {
	return resolve(c, &c.auditHandlerInit, "auditHandler", &c.auditHandler, c.initAuditHandler)
}

// initAnonymizationUseCase creates the orchestrator, with the FF1 cipher when enabled.
func (c *Container) initAnonymizationUseCase() (anonymizationUseCase.AnonymizationUseCase, error) {
	var cipherFactory anonymizationService.CipherFactory
	if c.config.FPECipherEnabled {
		cipherFactory = anonymizationService.FF1CipherFactory
	}

	baseUseCase := anonymizationUseCase.NewAnonymizationUseCase(cipherFactory, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for anonymization use case: %w", err)
		}
		return anonymizationUseCase.NewAnonymizationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initMappingRepository creates the mapping repository based on the database driver.
func (c *Container) initMappingRepository() (anonymizationUseCase.MappingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for mapping repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return anonymizationRepository.NewPostgreSQLMappingRepository(db), nil
	case database.DriverMySQL:
		return anonymizationMySQL.NewMySQLMappingRepository(db), nil
	default:
		return nil, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, c.config.DBDriver)
	}
}

// initAuditUseCase creates the audit use case when the audit store is enabled.
func (c *Container) initAuditUseCase() (anonymizationUseCase.AuditUseCase, error) {
	if !c.config.AuditStoreEnabled {
		return nil, nil
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for audit use case: %w", err)
	}

	mappingRepository, err := c.MappingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get mapping repository for audit use case: %w", err)
	}

	baseUseCase := anonymizationUseCase.NewAuditUseCase(txManager, mappingRepository, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for audit use case: %w", err)
		}
		return anonymizationUseCase.NewAuditUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAnonymizationHandler creates the anonymize handler with the obtained secret.
func (c *Container) initAnonymizationHandler() (*anonymizationHTTP.AnonymizationHandler, error) {
	useCase, err := c.AnonymizationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get anonymization use case: %w", err)
	}

	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case: %w", err)
	}

	secret, err := c.Secret()
	if err != nil {
		return nil, err
	}

	return anonymizationHTTP.NewAnonymizationHandler(
		useCase,
		auditUseCase,
		secret,
		c.config.DefaultAnonymizationOptions(),
		c.Logger(),
	), nil
}

// initAuditHandler creates the run lookup handler when the audit store is enabled.
func (c *Container) initAuditHandler() (*anonymizationHTTP.AuditHandler, error) {
	auditUseCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case: %w", err)
	}
	if auditUseCase == nil {
		return nil, nil
	}
	return anonymizationHTTP.NewAuditHandler(auditUseCase, c.Logger()), nil
}
