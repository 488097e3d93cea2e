// internal/application/query/dto/cart_dto.go
package dto

// LineItemDTO is one cart row as rendered to the client.
type LineItemDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartViewDTO is the display projection of a cart snapshot:
// rows, item count (sum of quantities), and running total.
type CartViewDTO struct {
	CartKey      string        `json:"cartKey"`
	LineItems    []LineItemDTO `json:"lineItems"`
	ItemCount    int           `json:"itemCount"`
	TotalAmount  float64       `json:"totalAmount"`
	TotalDisplay string        `json:"totalDisplay"`
}
