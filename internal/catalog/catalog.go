package catalog

import "upaheart-backend/internal/models"

// Catalog is the static product list. There is no mutation and no
// persistence; the slice is defined at startup and only read after that.
type Catalog struct {
	products []models.Product
}

func New() *Catalog {
	return &Catalog{products: products}
}

// NewWithProducts builds a catalog from an explicit product list. Used by
// tests.
func NewWithProducts(list []models.Product) *Catalog {
	return &Catalog{products: list}
}

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID looks a product up by its id.
func (c *Catalog) ByID(id string) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
