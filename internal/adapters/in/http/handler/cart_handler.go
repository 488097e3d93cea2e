// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	query "heavendesigns/internal/application/query"
	usecase "heavendesigns/internal/application/usecase"
	cartdom "heavendesigns/internal/domain/cart"
)

// CartHandler serves the cart endpoints:
//
//   - GET    /cart        current view (rows, item count, total)
//   - DELETE /cart        clear (?silent=true suppresses the notification)
//   - POST   /cart/items  add a catalog product {productId}
//   - PATCH  /cart/items  adjust quantity by delta {id, delta}
//   - PUT    /cart/items  set quantity absolutely {id, quantity}
//   - DELETE /cart/items  remove an item {id}
type CartHandler struct {
	uc   *usecase.CartUsecase
	view *query.CartViewQuery
}

func NewCartHandler(uc *usecase.CartUsecase, view *query.CartViewQuery) http.Handler {
	return &CartHandler{uc: uc, view: view}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil || h.view == nil {
		log.Printf("[cart_handler] exit status=500 reason=handler not configured")
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	isItems := strings.HasSuffix(path, "/cart/items")

	switch {
	case r.Method == http.MethodGet && !isItems:
		h.handleGet(w, r, start)
	case r.Method == http.MethodDelete && !isItems:
		h.handleClear(w, r, start)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, start)
	case r.Method == http.MethodPatch && isItems:
		h.handleAdjustQuantity(w, r, start)
	case r.Method == http.MethodPut && isItems:
		h.handleSetQuantity(w, r, start)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, start)
	default:
		log.Printf("[cart_handler] exit status=404 method=%s path=%q elapsed=%s", r.Method, path, time.Since(start))
		writeErr(w, http.StatusNotFound, "not found")
	}
}

// -------------------------
// request DTO
// -------------------------

// Quantity and Delta arrive as json.Number so that non-integer input is
// sanitized like the domain does instead of failing the whole decode.
type cartItemReq struct {
	CartKey   string      `json:"cartKey"`
	ProductID string      `json:"productId"`
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Price     float64     `json:"price"`
	Quantity  json.Number `json:"quantity"`
	Delta     json.Number `json:"delta"`
}

// reqQuantity coerces the quantity field for SetQuantity: absent,
// non-finite, non-positive, or non-integer input corrects to 1.
func reqQuantity(n json.Number) int {
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	if f < 1 || f != math.Trunc(f) {
		return 1
	}
	return int(f)
}

// reqDelta coerces the delta field for AdjustQuantity: absent or
// non-finite input is a no-op, fractional deltas truncate.
func reqDelta(n json.Number) int {
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

// identityKey derives the identity key for the configured strategy from the
// request's id/name/price fields.
func (h *CartHandler) identityKey(req cartItemReq) string {
	return h.uc.Strategy().KeyOf(cartdom.LineItem{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
	})
}

// -------------------------
// handlers
// -------------------------

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	cartKey := readCartKey(r, "")
	if cartKey == "" {
		writeErr(w, http.StatusBadRequest, "cartKey is required")
		return
	}

	v, err := h.view.Get(r.Context(), cartKey)
	if err != nil {
		log.Printf("[cart_handler] GET view error cartKey=%q err=%v", cartKey, err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[cart_handler] GET ok cartKey=%q items=%d elapsed=%s", cartKey, v.ItemCount, time.Since(start))
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, start time.Time) {
	cartKey := readCartKey(r, "")
	if cartKey == "" {
		writeErr(w, http.StatusBadRequest, "cartKey is required")
		return
	}

	silent := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("silent")), "true")

	if err := h.uc.Clear(r.Context(), cartKey, silent); err != nil {
		h.writeUCErr(w, cartKey, err)
		return
	}

	log.Printf("[cart_handler] DELETE clear ok cartKey=%q silent=%t elapsed=%s", cartKey, silent, time.Since(start))
	h.respondView(w, r, cartKey)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartKey := readCartKey(r, req.CartKey)
	pid := strings.TrimSpace(req.ProductID)
	if cartKey == "" || pid == "" {
		writeErr(w, http.StatusBadRequest, "cartKey and productId are required")
		return
	}

	if _, err := h.uc.AddItem(r.Context(), cartKey, pid); err != nil {
		h.writeUCErr(w, cartKey, err)
		return
	}

	log.Printf("[cart_handler] POST add-item ok cartKey=%q productId=%q elapsed=%s", cartKey, pid, time.Since(start))
	h.respondView(w, r, cartKey)
}

func (h *CartHandler) handleAdjustQuantity(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartKey := readCartKey(r, req.CartKey)
	key := h.identityKey(req)
	if cartKey == "" || key == "" {
		writeErr(w, http.StatusBadRequest, "cartKey and item identity are required")
		return
	}

	delta := reqDelta(req.Delta)
	if _, err := h.uc.AdjustQuantity(r.Context(), cartKey, key, delta); err != nil {
		h.writeUCErr(w, cartKey, err)
		return
	}

	log.Printf("[cart_handler] PATCH adjust ok cartKey=%q key=%q delta=%d elapsed=%s", cartKey, key, delta, time.Since(start))
	h.respondView(w, r, cartKey)
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartKey := readCartKey(r, req.CartKey)
	key := h.identityKey(req)
	if cartKey == "" || key == "" {
		writeErr(w, http.StatusBadRequest, "cartKey and item identity are required")
		return
	}

	qty := reqQuantity(req.Quantity)
	if _, err := h.uc.SetQuantity(r.Context(), cartKey, key, qty); err != nil {
		h.writeUCErr(w, cartKey, err)
		return
	}

	log.Printf("[cart_handler] PUT set-qty ok cartKey=%q key=%q qty=%d elapsed=%s", cartKey, key, qty, time.Since(start))
	h.respondView(w, r, cartKey)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartKey := readCartKey(r, req.CartKey)
	key := h.identityKey(req)
	if cartKey == "" || key == "" {
		writeErr(w, http.StatusBadRequest, "cartKey and item identity are required")
		return
	}

	if _, err := h.uc.RemoveItem(r.Context(), cartKey, key); err != nil {
		h.writeUCErr(w, cartKey, err)
		return
	}

	log.Printf("[cart_handler] DELETE remove-item ok cartKey=%q key=%q elapsed=%s", cartKey, key, time.Since(start))
	h.respondView(w, r, cartKey)
}

// -------------------------
// response helpers
// -------------------------

func (h *CartHandler) respondView(w http.ResponseWriter, r *http.Request, cartKey string) {
	v, err := h.view.Get(r.Context(), cartKey)
	if err != nil {
		log.Printf("[cart_handler] respondView error cartKey=%q err=%v", cartKey, err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) writeUCErr(w http.ResponseWriter, cartKey string, err error) {
	log.Printf("[cart_handler] uc error cartKey=%q err=%v", cartKey, err)

	if errors.Is(err, usecase.ErrCartInvalidArgument) || errors.Is(err, cartdom.ErrInvalidCart) {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeErr(w, http.StatusInternalServerError, err.Error())
}
