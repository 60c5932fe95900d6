package services

import (
	"context"
	"errors"
	"fmt"

	"hngpack/internal/models"
	"hngpack/internal/repositories"
	logx "hngpack/pkg/logger"

	"github.com/spf13/cast"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.DocumentRepository
}

// NewProductService creates a new ProductService. repo may be nil when no database is available.
func NewProductService(repo repositories.DocumentRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns the stored products, or the default catalog when the
// database is unavailable, fails, holds no product, or holds a document that
// cannot be read as a product.
// Callers cannot tell an empty collection from a failed read.
func (s *ProductService) ListProducts(ctx context.Context) []models.Product {
	if s.repo == nil {
		logx.Debug().Msg("database unavailable, serving default catalog")
		return models.DefaultCatalog()
	}

	docs, err := s.repo.GetDocuments(ctx, models.ProductCollection)
	if err != nil {
		logx.Warn().Err(err).Msg("failed to read products, serving default catalog")
		return models.DefaultCatalog()
	}
	if len(docs) == 0 {
		logx.Debug().Msg("no products stored, serving default catalog")
		return models.DefaultCatalog()
	}

	products := make([]models.Product, 0, len(docs))
	for i, doc := range docs {
		p, err := productFromDocument(doc)
		if err != nil {
			logx.Warn().Err(err).Int("index", i).Interface("id", doc["_id"]).Msg("malformed product document, serving default catalog")
			return models.DefaultCatalog()
		}
		products = append(products, p)
	}
	return products
}

// CreateProduct stores a validated product and returns its identifier.
func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) (string, error) {
	if s.repo == nil {
		return "", repositories.ErrDatabaseUnavailable
	}
	return s.repo.CreateDocument(ctx, models.ProductCollection, product)
}

// productFromDocument coerces a stored document into a Product.
// A missing price reads as 0 and a missing in_stock as true; an explicit null
// price is rejected and an explicit null in_stock reads as false.
func productFromDocument(doc models.Document) (models.Product, error) {
	var (
		p   = models.Product{InStock: true}
		err error
	)

	if p.Title, err = requiredText(doc, "title"); err != nil {
		return p, err
	}
	if p.Description, err = requiredText(doc, "description"); err != nil {
		return p, err
	}
	if p.Category, err = requiredText(doc, "category"); err != nil {
		return p, err
	}

	if v, ok := doc["price"]; ok {
		if v == nil {
			return p, errors.New("price is null")
		}
		if p.Price, err = cast.ToFloat64E(v); err != nil {
			return p, fmt.Errorf("price: %w", err)
		}
	}
	if p.Price < 0 {
		return p, errors.New("price must not be negative")
	}

	if v, ok := doc["in_stock"]; ok {
		if v == nil {
			p.InStock = false
		} else if p.InStock, err = cast.ToBoolE(v); err != nil {
			return p, fmt.Errorf("in_stock: %w", err)
		}
	}

	if v, ok := doc["image"]; ok && v != nil {
		image, err := cast.ToStringE(v)
		if err != nil {
			return p, fmt.Errorf("image: %w", err)
		}
		p.Image = &image
	}
	return p, nil
}

func requiredText(doc models.Document, key string) (string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s is missing", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}
