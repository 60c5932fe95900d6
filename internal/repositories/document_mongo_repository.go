package repositories

import (
	"context"
	"fmt"

	"hngpack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDocumentRepository is a MongoDB implementation of DocumentRepository.
type MongoDocumentRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDocumentRepository connects to uri and checks the server with a ping.
// The caller bounds the connect and ping through ctx.
func NewMongoDocumentRepository(ctx context.Context, uri, dbName string) (*MongoDocumentRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDocumentRepository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// CreateDocument inserts one document and returns its ObjectID in hex.
func (r *MongoDocumentRepository) CreateDocument(ctx context.Context, collection string, document any) (string, error) {
	doc, err := ToDocument(document)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", fmt.Errorf("failed to insert document into %s: %w", collection, err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

// GetDocuments returns every document of a collection in natural order.
func (r *MongoDocumentRepository) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	cur, err := r.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read documents from %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(raw))
	for _, m := range raw {
		doc := models.Document(m)
		if oid, ok := doc["_id"].(primitive.ObjectID); ok {
			doc["_id"] = oid.Hex()
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ListCollections returns the collection names of the database.
func (r *MongoDocumentRepository) ListCollections(ctx context.Context) ([]string, error) {
	names, err := r.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// Name returns the database name.
func (r *MongoDocumentRepository) Name() string {
	return r.db.Name()
}

// Close disconnects the client.
func (r *MongoDocumentRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

var _ DocumentRepository = (*MongoDocumentRepository)(nil)
