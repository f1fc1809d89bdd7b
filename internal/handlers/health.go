package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/sentry-coach/pkg/storage"
)

type HealthResponse struct {
	Status        string            `json:"status"`
	Timestamp     time.Time         `json:"timestamp"`
	Service       string            `json:"service"`
	LLMConfigured bool              `json:"llm_configured"`
	Components    map[string]string `json:"components"`
}

type HealthHandler struct {
	storage       storage.Storage
	llmConfigured bool
	logger        *slog.Logger
}

func NewHealthHandler(store storage.Storage, llmConfigured bool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage:       store,
		llmConfigured: llmConfigured,
		logger:        logger,
	}
}

// ServeHTTP reports storage reachability. A missing model is not unhealthy:
// turns then use the fallback reply.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string)
	overallStatus := "healthy"

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("Storage health check failed", "error", err)
		components["storage"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["storage"] = "healthy"
	}

	if h.llmConfigured {
		components["llm"] = "configured"
	} else {
		components["llm"] = "fallback"
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, h.logger, statusCode, HealthResponse{
		Status:        overallStatus,
		Timestamp:     time.Now(),
		Service:       "sentry-coach",
		LLMConfigured: h.llmConfigured,
		Components:    components,
	})
}
