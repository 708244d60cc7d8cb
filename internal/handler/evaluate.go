// Package handler exposes the evaluation engine over HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/aerotax/internal/domain"
	"github.com/dukerupert/aerotax/internal/engine"
)

// EvaluateHandler serves tax evaluation requests.
type EvaluateHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewEvaluateHandler(eng *engine.Engine, logger *slog.Logger) *EvaluateHandler {
	return &EvaluateHandler{engine: eng, logger: logger}
}

// Evaluate handles POST /v1/evaluate: it decodes a pricing request,
// runs the engine, and returns the per-itinerary payments.
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, r, domain.Invalid("handler.evaluate", "malformed request body"))
		return
	}

	result, err := h.engine.Evaluate(r.Context(), &req)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	JSONResponse(w, http.StatusOK, result)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
