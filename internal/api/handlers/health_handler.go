package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/user-directory/engine/internal/api/types"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ready(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	timeout time.Duration
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store, timeout: 2 * time.Second}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

// Readiness fails with 503 while the store cannot be pinged.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	if err := h.store.Ready(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, types.APIResponse{
			Success: false,
			Error:   &types.APIError{Code: "unavailable", Message: "database unreachable"},
		})
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"status": "ready"}})
}
