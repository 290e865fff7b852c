package backfill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cdillerud/docsync/pkg/handlers"
	"github.com/cdillerud/docsync/pkg/routes"
)

// ErrInvalidBatch is returned for malformed or empty batch payloads.
var ErrInvalidBatch = errors.New("invalid backfill batch")

// Handler provides HTTP endpoints for backfill operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "backfill"),
	}
}

// Routes returns the route group definition for backfill endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/migration",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/batch", Handler: h.Batch},
		},
	}
}

// Batch migrates a JSON array of legacy records and returns per-record
// results. Individual record failures are reported inline, not as an HTTP
// error.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var records []LegacyRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBatch)
		return
	}

	if len(records) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBatch)
		return
	}

	results, err := h.sys.Run(r.Context(), records)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}
