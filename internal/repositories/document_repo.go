package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hngpack/internal/models"
)

// ErrDatabaseUnavailable is returned when no document store could be opened.
var ErrDatabaseUnavailable = errors.New("Database not available. Check DATABASE_URL and DATABASE_NAME environment variables.")

// DocumentRepository defines the interface for document store access.
type DocumentRepository interface {
	// CreateDocument stores document in collection and returns the new identifier.
	CreateDocument(ctx context.Context, collection string, document any) (string, error)
	// GetDocuments returns every document in collection.
	GetDocuments(ctx context.Context, collection string) ([]models.Document, error)
	// ListCollections returns the names of the collections holding documents.
	ListCollections(ctx context.Context) ([]string, error)
	// Name is the database name.
	Name() string
	Close(ctx context.Context) error
}

// ToDocument serializes v using its JSON field names.
// Maps are copied as they are, so integers decoded by models.DecodeDocument stay int64.
func ToDocument(v any) (models.Document, error) {
	switch d := v.(type) {
	case models.Document:
		return cloneDocument(d), nil
	case map[string]any:
		return cloneDocument(d), nil
	case models.Order:
		return cloneDocument(d), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	var doc models.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("document must serialize to a JSON object: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document must not be null")
	}
	return doc, nil
}

func cloneDocument(src map[string]any) models.Document {
	doc := make(models.Document, len(src))
	for k, v := range src {
		doc[k] = v
	}
	return doc
}
