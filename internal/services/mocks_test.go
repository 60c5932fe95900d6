package services_test

import (
	"context"

	"hngpack/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a mock implementation of repositories.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateDocument(ctx context.Context, collection string, document any) (string, error) {
	args := m.Called(ctx, collection, document)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepository) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListCollections(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentRepository) Name() string {
	return m.Called().String(0)
}

func (m *MockDocumentRepository) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockPublisher is a mock implementation of services.OrderEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(event any) error {
	return m.Called(event).Error(0)
}

// envMap implements services.EnvChecker over a fixed set of keys.
type envMap map[string]bool

func (e envMap) Present(key string) bool {
	return e[key]
}
