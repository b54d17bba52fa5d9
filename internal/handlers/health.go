package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/ringtrail/internal/storage"
)

// HealthHandler reports service liveness and storage reachability.
type HealthHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func NewHealthHandler(storage storage.Storage, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Supported methods: GET"}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	resp := HealthResponse{Status: "ok", Storage: "ok"}
	status := http.StatusOK
	if err := h.storage.Ping(r.Context()); err != nil {
		h.logger.Error("Storage ping failed", "error", err)
		resp.Status = "degraded"
		resp.Storage = "unreachable"
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode health response", "error", err)
	}
}
