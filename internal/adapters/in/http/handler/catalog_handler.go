// internal/adapters/in/http/handler/catalog_handler.go
package handler

import (
	"net/http"

	productdom "heavendesigns/internal/domain/product"
)

// CatalogHandler serves GET /catalog: the normalized product list the shop
// page renders from.
type CatalogHandler struct {
	catalog *productdom.Catalog
}

func NewCatalogHandler(catalog *productdom.Catalog) http.Handler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.catalog == nil {
		writeErr(w, http.StatusInternalServerError, "catalog is not configured")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": h.catalog.List(),
	})
}
