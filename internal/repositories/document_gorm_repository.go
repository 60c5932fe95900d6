package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hngpack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// documentRecord is one document row; all collections share the table.
type documentRecord struct {
	Seq        uint   `gorm:"primaryKey;autoIncrement"`
	ID         string `gorm:"uniqueIndex;type:varchar(36);not null"`
	Collection string `gorm:"index;type:varchar(255);not null"`
	Body       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

func (documentRecord) TableName() string {
	return "documents"
}

// GORMDocumentRepository is a GORM implementation of DocumentRepository.
type GORMDocumentRepository struct {
	db   *gorm.DB
	name string
}

// NewGORMDocumentRepository creates a new instance of GORMDocumentRepository.
func NewGORMDocumentRepository(db *gorm.DB, name string) *GORMDocumentRepository {
	return &GORMDocumentRepository{
		db:   db,
		name: name,
	}
}

// AutoMigrate creates or updates the documents table.
func (r *GORMDocumentRepository) AutoMigrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&documentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return nil
}

// CreateDocument inserts a document row.
func (r *GORMDocumentRepository) CreateDocument(ctx context.Context, collection string, document any) (string, error) {
	doc, err := ToDocument(document)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	rec := documentRecord{
		ID:         uuid.New().String(),
		Collection: collection,
		Body:       string(body),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", fmt.Errorf("failed to create document in %s: %w", collection, err)
	}
	return rec.ID, nil
}

// GetDocuments retrieves all documents of a collection in insertion order.
func (r *GORMDocumentRepository) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	var recs []documentRecord
	err := r.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("seq").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get documents from %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(recs))
	for _, rec := range recs {
		doc, err := models.DecodeDocument([]byte(rec.Body))
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", rec.ID, err)
		}
		if doc == nil {
			doc = models.Document{}
		}
		doc["_id"] = rec.ID
		docs = append(docs, doc)
	}
	return docs, nil
}

// ListCollections returns the distinct collection names in the table.
func (r *GORMDocumentRepository) ListCollections(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&documentRecord{}).
		Distinct().
		Order("collection").
		Pluck("collection", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// Name returns the database name.
func (r *GORMDocumentRepository) Name() string {
	return r.name
}

// Close closes the underlying connection pool.
func (r *GORMDocumentRepository) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

var _ DocumentRepository = (*GORMDocumentRepository)(nil)
