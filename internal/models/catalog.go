package models

// DefaultCatalog returns the products served when the database has nothing usable.
// A fresh slice is returned on every call so callers may modify it.
func DefaultCatalog() []Product {
	return []Product{
		{Title: "Corrugated Boxes (Set of 25)", Description: "Durable shipping cartons in multiple sizes.", Price: 49.99, Category: "Boxes", InStock: true},
		{Title: "Kraft Paper Bags (100 pcs)", Description: "Eco-friendly retail carry bags.", Price: 34.50, Category: "Bags", InStock: true},
		{Title: "Packaging Tape (6 rolls)", Description: "High-adhesion tape for secure sealing.", Price: 14.99, Category: "Tape", InStock: true},
		{Title: "Bubble Wrap (100m)", Description: "Cushioning for fragile items.", Price: 24.99, Category: "Protective", InStock: true},
	}
}
