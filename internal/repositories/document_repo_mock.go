package repositories

import (
	"context"
	"sort"
	"sync"

	"hngpack/internal/models"

	"github.com/google/uuid"
)

// MockDocumentRepository is an in-memory implementation of DocumentRepository.
// It backs the memory:// database URL and the tests.
type MockDocumentRepository struct {
	name        string
	collections map[string][]models.Document
	mu          sync.RWMutex
}

// NewMockDocumentRepository creates a new instance of MockDocumentRepository.
func NewMockDocumentRepository(name string) *MockDocumentRepository {
	return &MockDocumentRepository{
		name:        name,
		collections: make(map[string][]models.Document),
	}
}

// CreateDocument appends a document to the collection under a fresh UUID.
func (r *MockDocumentRepository) CreateDocument(_ context.Context, collection string, document any) (string, error) {
	doc, err := ToDocument(document)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	doc["_id"] = id

	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[collection] = append(r.collections[collection], doc)
	return id, nil
}

// GetDocuments returns copies of all documents in the collection, in insertion order.
func (r *MockDocumentRepository) GetDocuments(_ context.Context, collection string) ([]models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.collections[collection]
	docs := make([]models.Document, 0, len(stored))
	for _, d := range stored {
		docs = append(docs, cloneDocument(d))
	}
	return docs, nil
}

// ListCollections returns the sorted names of non-empty collections.
func (r *MockDocumentRepository) ListCollections(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Name returns the database name.
func (r *MockDocumentRepository) Name() string {
	return r.name
}

// Close is a no-op.
func (r *MockDocumentRepository) Close(context.Context) error {
	return nil
}

var _ DocumentRepository = (*MockDocumentRepository)(nil)
