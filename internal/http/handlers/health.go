package handlers

import (
	"net/http"
	"time"
)

// Health handles GET /health.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"service":   "NFT Designer API",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
