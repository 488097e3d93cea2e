// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// LineItem represents "one line item" in a cart.
// Price is a snapshot taken at add-time; it is never re-fetched from the catalog.
type LineItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// KeyStrategy decides how "same product already in cart" is detected.
//
// KeyByID uses the product id (degraded records fall back to the composite).
// KeyByNamePrice always uses the name::price composite.
type KeyStrategy int

const (
	KeyByID KeyStrategy = iota
	KeyByNamePrice
)

// ParseKeyStrategy maps a config string to a strategy ("id" is the default).
func ParseKeyStrategy(s string) KeyStrategy {
	if strings.TrimSpace(strings.ToLower(s)) == "name-price" {
		return KeyByNamePrice
	}
	return KeyByID
}

// KeyOf returns the identity key for it under this strategy.
// Empty when the item carries nothing usable as identity.
func (s KeyStrategy) KeyOf(it LineItem) string {
	id := strings.TrimSpace(it.ID)
	name := strings.TrimSpace(it.Name)

	if s == KeyByID && id != "" {
		return id
	}
	if name == "" {
		return id
	}
	return name + "::" + strconv.FormatFloat(it.Price, 'f', -1, 64)
}

// Cart is the canonical list of line items for one cart key.
//
// Items stay unique by identity key: colliding entries merge by summing
// quantity, never by appending a second row.
type Cart struct {
	Items    []LineItem
	Strategy KeyStrategy
}

// Decode parses a persisted blob into a Cart.
// Corrupt, non-array, or missing blobs are treated as an empty cart
// (fail-open; the caller never sees a parse error).
func Decode(blob []byte, strategy KeyStrategy) Cart {
	c := Cart{Items: []LineItem{}, Strategy: strategy}

	if len(strings.TrimSpace(string(blob))) == 0 {
		return c
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return c
	}

	for _, r := range raw {
		var m map[string]any
		if err := json.Unmarshal(r, &m); err != nil {
			continue
		}
		if it := NormalizeLineItem(m); it != nil {
			c.Items = append(c.Items, *it)
		}
	}

	c.normalize()
	return c
}

// Encode serializes the cart back to the persisted blob layout
// (a JSON array of {id?, name, price, quantity}).
func (c *Cart) Encode() ([]byte, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}
	c.normalize()
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	return json.Marshal(c.Items)
}

// Add merges it into the cart: existing identity key sums quantity,
// otherwise the item is appended. Malformed items are rejected.
func (c *Cart) Add(it LineItem) error {
	if c == nil {
		return ErrInvalidCart
	}

	n := Normalize(it)
	if n == nil {
		return ErrInvalidCart
	}

	key := c.Strategy.KeyOf(*n)
	if key == "" {
		return ErrInvalidCart
	}

	if idx := c.findIndex(key); idx >= 0 {
		c.Items[idx].Quantity += n.Quantity
	} else {
		c.Items = append(c.Items, *n)
	}

	c.normalize()
	return nil
}

// Remove deletes the line item(s) matching key.
// Returns the removed item's name and whether anything was removed.
func (c *Cart) Remove(key string) (string, bool) {
	if c == nil {
		return "", false
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}

	removedName := ""
	removed := false

	next := c.Items[:0]
	for _, it := range c.Items {
		if c.Strategy.KeyOf(it) == key {
			removedName = it.Name
			removed = true
			continue
		}
		next = append(next, it)
	}
	c.Items = next

	return removedName, removed
}

// AdjustOutcome reports what an AdjustQuantity call did.
type AdjustOutcome int

const (
	AdjustNoop AdjustOutcome = iota
	AdjustUpdated
	AdjustRemoved
)

// AdjustQuantity adds delta to the target item's quantity.
// delta == 0 or an unknown key is a no-op. A resulting quantity <= 0 removes
// the item entirely; the removal is reported as AdjustRemoved and a
// non-positive quantity is never persisted.
func (c *Cart) AdjustQuantity(key string, delta int) (AdjustOutcome, string) {
	if c == nil || delta == 0 {
		return AdjustNoop, ""
	}

	key = strings.TrimSpace(key)
	idx := c.findIndex(key)
	if idx < 0 {
		return AdjustNoop, ""
	}

	name := c.Items[idx].Name
	next := c.Items[idx].Quantity + delta

	if next <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return AdjustRemoved, name
	}

	c.Items[idx].Quantity = next
	return AdjustUpdated, name
}

// SetQuantity sets the target item's quantity to an absolute value.
// Non-positive input is sanitized to 1; the item is NOT removed at the
// boundary. This differs from AdjustQuantity on purpose: decrementing to
// zero via the +/- control removes, typing a non-positive number is
// corrected to 1.
func (c *Cart) SetQuantity(key string, qty int) bool {
	if c == nil {
		return false
	}

	key = strings.TrimSpace(key)
	idx := c.findIndex(key)
	if idx < 0 {
		return false
	}

	if qty < 1 {
		qty = 1
	}
	c.Items[idx].Quantity = qty
	return true
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	if c == nil {
		return
	}
	c.Items = []LineItem{}
}

// Count is the sum of quantities.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of price x quantity.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	t := 0.0
	for _, it := range c.Items {
		t += it.Price * float64(it.Quantity)
	}
	return t
}

// TotalDisplay is Total as a two-decimal fixed string (order amounts).
func (c *Cart) TotalDisplay() string {
	return fmt.Sprintf("%.2f", c.Total())
}

func (c *Cart) findIndex(key string) int {
	if key == "" {
		return -1
	}
	for i := range c.Items {
		if c.Strategy.KeyOf(c.Items[i]) == key {
			return i
		}
	}
	return -1
}

// normalize re-normalizes every item, merges duplicate identity keys by
// summing quantity, and keeps a stable order (first-seen position).
func (c *Cart) normalize() {
	if c == nil || len(c.Items) == 0 {
		return
	}

	type slot struct {
		item LineItem
		pos  int
	}

	m := map[string]slot{}
	pos := 0

	for _, raw := range c.Items {
		n := Normalize(raw)
		if n == nil {
			continue
		}

		key := c.Strategy.KeyOf(*n)
		if key == "" {
			continue
		}

		if exist, ok := m[key]; ok {
			exist.item.Quantity += n.Quantity
			m[key] = exist
		} else {
			m[key] = slot{item: *n, pos: pos}
			pos++
		}
	}

	out := make([]slot, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })

	items := make([]LineItem, 0, len(out))
	for _, s := range out {
		items = append(items, s.item)
	}
	c.Items = items
}

// ----------------------------
// Normalization
// ----------------------------

// NormalizeLineItem validates and coerces a raw record into a well-formed
// line item. Returns nil on reject. Pure.
//
// Rules:
//   - non-record input           -> nil
//   - no usable name and no id   -> nil
//   - id absent                  -> derived by slugifying the name
//   - empty id after derivation  -> nil
//   - non-finite price           -> 0 (never rejects on price alone)
//   - quantity floored; non-finite or <= 0 -> 1
func NormalizeLineItem(raw any) *LineItem {
	if raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case LineItem:
		return Normalize(v)
	case *LineItem:
		if v == nil {
			return nil
		}
		return Normalize(*v)
	case map[string]any:
		it := LineItem{
			ID:       stringField(v["id"]),
			Name:     stringField(v["name"]),
			Price:    numberField(v["price"]),
			Quantity: quantityField(v["quantity"]),
		}
		return Normalize(it)
	default:
		return nil
	}
}

// Normalize is the typed fixed point of NormalizeLineItem: normalizing an
// already-normalized item returns an identical value.
func Normalize(it LineItem) *LineItem {
	name := strings.TrimSpace(it.Name)
	id := strings.TrimSpace(it.ID)

	if name == "" && id == "" {
		return nil
	}
	if id == "" {
		id = slugify(name)
	}
	if id == "" || name == "" {
		return nil
	}

	price := it.Price
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		price = 0
	}

	qty := it.Quantity
	if qty < 1 {
		qty = 1
	}

	return &LineItem{ID: id, Name: name, Price: price, Quantity: qty}
}

// slugify lowercases, collapses non-alphanumeric runs to a single hyphen,
// and trims leading/trailing hyphens.
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

// ----------------------------
// raw field coercion (JSON-decoded values)
// ----------------------------

func stringField(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func numberField(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func quantityField(v any) int {
	f := numberField(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	q := int(math.Floor(f))
	if q < 1 {
		return 1
	}
	return q
}
