// internal/adapters/in/http/handler/helpers.go
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const maxBodySize = 1 << 20 // 1MB

func readJSON(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

// readCartKey resolves the caller's cart key: query param first, then the
// X-Cart-Key header, then a body-provided fallback.
func readCartKey(r *http.Request, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get("cartKey")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("X-Cart-Key")); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}
