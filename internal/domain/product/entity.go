// internal/domain/product/entity.go
package product

import (
	"math"
	"strings"
)

// Product is a read-only catalog record.
// Price is in major currency units.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Normalize validates and coerces a raw catalog record.
// Returns nil on reject (no usable name, or no derivable id).
func Normalize(p Product) *Product {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = slugify(name)
	}
	if id == "" {
		return nil
	}

	price := p.Price
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		price = 0
	}

	return &Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Image:       strings.TrimSpace(p.Image),
		Description: strings.TrimSpace(p.Description),
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
