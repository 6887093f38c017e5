// Package mocks provides mock implementations of anonymization use cases and repositories for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// MockMappingRepository is a mock implementation of MappingRepository for testing.
type MockMappingRepository struct {
	mock.Mock
}

// CreateBatch mocks the CreateBatch method of MappingRepository.
func (m *MockMappingRepository) CreateBatch(ctx context.Context, run *domain.AuditRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// ListByRun mocks the ListByRun method of MappingRepository.
func (m *MockMappingRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]*domain.AuditRecord, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditRecord), args.Error(1)
}

// MockAnonymizationUseCase is a mock implementation of AnonymizationUseCase for testing.
type MockAnonymizationUseCase struct {
	mock.Mock
}

// Anonymize mocks the Anonymize method of AnonymizationUseCase.
func (m *MockAnonymizationUseCase) Anonymize(
	ctx context.Context,
	table records.Table,
	secret keysDomain.Secret,
	opts domain.Options,
) (*domain.Result, error) {
	args := m.Called(ctx, table, secret, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

// MockAuditUseCase is a mock implementation of AuditUseCase for testing.
type MockAuditUseCase struct {
	mock.Mock
}

// Record mocks the Record method of AuditUseCase.
func (m *MockAuditUseCase) Record(
	ctx context.Context,
	mode domain.Mode,
	result *domain.Result,
) (*domain.AuditRun, error) {
	args := m.Called(ctx, mode, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditRun), args.Error(1)
}

// Get mocks the Get method of AuditUseCase.
func (m *MockAuditUseCase) Get(ctx context.Context, runID uuid.UUID) (*domain.AuditRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditRun), args.Error(1)
}
