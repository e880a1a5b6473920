package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vigil/internal/alerts"
	"vigil/internal/alerts/service"
	"vigil/internal/entities"
	"vigil/internal/stats"
	"vigil/pkg/platform/sentinel"
)

//go:generate mockgen -source=handler.go -destination=mocks/alerts-mocks.go -package=mocks Service

// Service defines the interface for alert operations.
type Service interface {
	Alerts(ctx context.Context, kind entities.Kind, force bool) ([]alerts.AlertRecord, error)
	Stats(ctx context.Context, kind entities.Kind, userID string) (stats.Stats, error)
	Statuses(ctx context.Context, kind entities.Kind) ([]service.EntityStatus, error)
	MarkRead(ctx context.Context, userID, alertID string) error
	Invalidate(kind entities.Kind)
	InvalidateThresholds()
}

// Handler wires alert endpoints to the alert service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an alert handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts alert endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/alerts/{kind}", h.HandleAlerts)
	r.Get("/alerts/{kind}/stats", h.HandleStats)
	r.Get("/alerts/{kind}/status", h.HandleStatuses)
	r.Post("/alerts/{kind}/invalidate", h.HandleInvalidate)
	r.Post("/alerts/read", h.HandleMarkRead)
	r.Post("/thresholds/invalidate", h.HandleInvalidateThresholds)
}

// HandleAlerts handles GET /alerts/{kind} requests.
func (h *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := entities.Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown entity kind")
		return
	}
	force := r.URL.Query().Get("refresh") == "true"

	start := time.Now()
	list, err := h.service.Alerts(ctx, kind, force)
	if err != nil {
		h.logger.ErrorContext(ctx, "alert fetch failed",
			"kind", kind,
			"force", force,
			"error", err,
		)
		writeServiceError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "alerts served",
		"kind", kind,
		"count", len(list),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, alertsResponse{Alerts: list, Count: len(list)})
}

// HandleStats handles GET /alerts/{kind}/stats requests. The optional user
// query parameter selects whose read state partitions the unread counts.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := entities.Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown entity kind")
		return
	}

	result, err := h.service.Stats(ctx, kind, r.URL.Query().Get("user"))
	if err != nil {
		h.logger.ErrorContext(ctx, "stats aggregation failed",
			"kind", kind,
			"error", err,
		)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleStatuses handles GET /alerts/{kind}/status requests.
func (h *Handler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := entities.Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown entity kind")
		return
	}

	statuses, err := h.service.Statuses(ctx, kind)
	if err != nil {
		h.logger.ErrorContext(ctx, "status classification failed",
			"kind", kind,
			"error", err,
		)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusesResponse{Statuses: statuses})
}

// HandleInvalidate handles POST /alerts/{kind}/invalidate requests.
func (h *Handler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	kind := entities.Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown entity kind")
		return
	}
	h.service.Invalidate(kind)
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

// HandleMarkRead handles POST /alerts/read requests.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.AlertID == "" {
		writeError(w, http.StatusBadRequest, "user_id and alert_id are required")
		return
	}

	if err := h.service.MarkRead(ctx, req.UserID, req.AlertID); err != nil {
		h.logger.ErrorContext(ctx, "mark read failed",
			"user_id", req.UserID,
			"alert_id", req.AlertID,
			"error", err,
		)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// HandleInvalidateThresholds handles POST /thresholds/invalidate requests.
func (h *Handler) HandleInvalidateThresholds(w http.ResponseWriter, _ *http.Request) {
	h.service.InvalidateThresholds()
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, sentinel.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "generation timed out")
	case errors.Is(err, sentinel.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "dependency unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
