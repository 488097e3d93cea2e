// internal/domain/product/catalog.go
package product

import (
	_ "embed"
	"encoding/json"
	"log"
)

//go:embed products.json
var inlineCatalogDoc []byte

// fallbackProducts is the fixed built-in product list, used whenever the
// catalog document is absent, unparseable, or empty.
var fallbackProducts = []Product{
	{
		ID:          "custom-shirt",
		Name:        "Custom Shirt",
		Price:       20,
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=600&q=80",
		Description: "Soft cotton tees with your artwork pressed in vibrant colors.",
	},
	{
		ID:          "custom-hoodie",
		Name:        "Custom Hoodie",
		Price:       35,
		Image:       "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?auto=format&fit=crop&w=600&q=80",
		Description: "Cozy fleece hoodies personalized for gifts, teams, or events.",
	},
	{
		ID:          "custom-tote",
		Name:        "Custom Tote Bag",
		Price:       15,
		Image:       "https://images.unsplash.com/photo-1503342452485-86eb59083b47?auto=format&fit=crop&w=600&q=80",
		Description: "Reusable totes ready for monograms, quotes, and bold graphics.",
	},
	{
		ID:          "custom-apron",
		Name:        "Custom Apron",
		Price:       28,
		Image:       "https://images.unsplash.com/photo-1503387762-592deb58ef4e?auto=format&fit=crop&w=600&q=80",
		Description: "Aprons for makers and bakers finished with durable vinyl art.",
	},
	{
		ID:          "vinyl-sticker-pack",
		Name:        "Vinyl Sticker Pack",
		Price:       12,
		Image:       "https://images.unsplash.com/photo-1527529482837-4698179dc6ce?auto=format&fit=crop&w=600&q=80",
		Description: "A bundle of custom die-cut stickers for laptops, bottles, and more.",
	},
}

// Catalog is the read-only product source.
type Catalog struct {
	products []Product
}

// NewCatalog parses a JSON array of product records, dropping records that
// fail normalization. A nil/unparseable/empty document falls back to the
// built-in product list (fail-open, same as the cart blob policy).
func NewCatalog(doc []byte) *Catalog {
	if len(doc) == 0 {
		return &Catalog{products: FallbackProducts()}
	}

	var raw []Product
	if err := json.Unmarshal(doc, &raw); err != nil {
		log.Printf("[catalog] WARN: unable to parse catalog document, using fallback: %v", err)
		return &Catalog{products: FallbackProducts()}
	}

	out := make([]Product, 0, len(raw))
	for _, p := range raw {
		if n := Normalize(p); n != nil {
			out = append(out, *n)
		}
	}
	if len(out) == 0 {
		return &Catalog{products: FallbackProducts()}
	}

	return &Catalog{products: out}
}

// NewInlineCatalog builds the catalog from the embedded document.
func NewInlineCatalog() *Catalog {
	return NewCatalog(inlineCatalogDoc)
}

// FallbackProducts returns a copy of the built-in product list.
func FallbackProducts() []Product {
	out := make([]Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}

// List returns a copy of the catalog products.
func (c *Catalog) List() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// FindByID looks a product up by id.
func (c *Catalog) FindByID(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
