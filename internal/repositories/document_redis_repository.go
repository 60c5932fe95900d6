package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"hngpack/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisDocumentRepository keeps each collection as a Redis list of JSON documents.
// Keys are namespaced by the database name.
type RedisDocumentRepository struct {
	rdb  *redis.Client
	name string
}

// NewRedisDocumentRepository creates a new instance of RedisDocumentRepository.
func NewRedisDocumentRepository(rdb *redis.Client, name string) *RedisDocumentRepository {
	return &RedisDocumentRepository{rdb: rdb, name: name}
}

func (r *RedisDocumentRepository) collectionKey(collection string) string {
	return fmt.Sprintf("%s:collection:%s", r.name, collection)
}

func (r *RedisDocumentRepository) collectionsKey() string {
	return r.name + ":collections"
}

// CreateDocument appends the document to the collection list.
func (r *RedisDocumentRepository) CreateDocument(ctx context.Context, collection string, document any) (string, error) {
	doc, err := ToDocument(document)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	doc["_id"] = id

	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, r.collectionKey(collection), b)
		pipe.SAdd(ctx, r.collectionsKey(), collection)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to push document to %s: %w", collection, err)
	}
	return id, nil
}

// GetDocuments returns the collection list in insertion order.
func (r *RedisDocumentRepository) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	rows, err := r.rdb.LRange(ctx, r.collectionKey(collection), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to load documents from %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(rows))
	for i, s := range rows {
		doc, err := models.DecodeDocument([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %d of %s: %w", i, collection, err)
		}
		if doc == nil {
			doc = models.Document{}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ListCollections returns the sorted names of collections written through this repository.
func (r *RedisDocumentRepository) ListCollections(ctx context.Context) ([]string, error) {
	names, err := r.rdb.SMembers(ctx, r.collectionsKey()).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Name returns the key namespace.
func (r *RedisDocumentRepository) Name() string {
	return r.name
}

// Close closes the client.
func (r *RedisDocumentRepository) Close(context.Context) error {
	return r.rdb.Close()
}

var _ DocumentRepository = (*RedisDocumentRepository)(nil)
