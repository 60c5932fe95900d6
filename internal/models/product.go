package models

// Product represents a packaging product in the store.
type Product struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"in_stock"`
	Image       *string `json:"image"`
}

// CreateProductRequest is the body accepted by POST /api/products.
// Price and InStock are pointers so a missing field can be told apart from a zero value.
type CreateProductRequest struct {
	Title       *string  `json:"title" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    *string  `json:"category" validate:"required"`
	InStock     *bool    `json:"in_stock"`
	Image       *string  `json:"image"`
}

// ToProduct converts a validated request into a Product, applying defaults.
func (r CreateProductRequest) ToProduct() Product {
	p := Product{
		InStock: true,
		Image:   r.Image,
	}
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	return p
}
