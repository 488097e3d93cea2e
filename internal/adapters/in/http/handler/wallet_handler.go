// internal/adapters/in/http/handler/wallet_handler.go
package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "heavendesigns/internal/application/usecase"
)

// WalletHandler serves the wallet-widget callbacks:
//
//   - POST /wallet/orders          snapshot the cart total and create an order
//   - POST /wallet/orders/capture  capture an approved order (clears the cart)
//   - POST /wallet/orders/cancel   user closed the widget (cart untouched)
type WalletHandler struct {
	uc *usecase.WalletCheckoutUsecase
}

func NewWalletHandler(uc *usecase.WalletCheckoutUsecase) http.Handler {
	return &WalletHandler{uc: uc}
}

type walletReq struct {
	CartKey    string `json:"cartKey"`
	OrderID    string `json:"orderId"`
	PayerEmail string `json:"payerEmail"`
}

func (h *WalletHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "wallet handler is not configured")
		return
	}

	switch {
	case strings.HasSuffix(path, "/wallet/orders"):
		h.handleCreateOrder(w, r, start)
	case strings.HasSuffix(path, "/wallet/orders/capture"):
		h.handleCapture(w, r, start)
	case strings.HasSuffix(path, "/wallet/orders/cancel"):
		h.handleCancel(w, r, start)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *WalletHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req walletReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartKey := readCartKey(r, req.CartKey)
	if cartKey == "" {
		writeErr(w, http.StatusBadRequest, "cartKey is required")
		return
	}

	orderID, err := h.uc.CreateOrder(r.Context(), cartKey)
	if err != nil {
		h.writeUCErr(w, cartKey, err)
		return
	}

	log.Printf("[wallet_handler] POST create-order ok cartKey=%q orderId=%q elapsed=%s", cartKey, orderID, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID})
}

func (h *WalletHandler) handleCapture(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req walletReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartKey := readCartKey(r, req.CartKey)
	if cartKey == "" || strings.TrimSpace(req.OrderID) == "" {
		writeErr(w, http.StatusBadRequest, "cartKey and orderId are required")
		return
	}

	if err := h.uc.Capture(r.Context(), cartKey, req.OrderID, req.PayerEmail); err != nil {
		h.writeUCErr(w, cartKey, err)
		return
	}

	log.Printf("[wallet_handler] POST capture ok cartKey=%q orderId=%q elapsed=%s", cartKey, req.OrderID, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]string{"status": "COMPLETED"})
}

func (h *WalletHandler) handleCancel(w http.ResponseWriter, r *http.Request, start time.Time) {
	h.uc.Cancel(r.Context())
	log.Printf("[wallet_handler] POST cancel ok elapsed=%s", time.Since(start))
	w.WriteHeader(http.StatusNoContent)
}

func (h *WalletHandler) writeUCErr(w http.ResponseWriter, cartKey string, err error) {
	log.Printf("[wallet_handler] uc error cartKey=%q err=%v", cartKey, err)

	switch {
	case errors.Is(err, usecase.ErrEmptyCart):
		writeErr(w, http.StatusBadRequest, "Your cart is empty.")
	case errors.Is(err, usecase.ErrWalletInvalidArgument):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusBadGateway, "We couldn't reach the wallet provider. Please try again later.")
	}
}
