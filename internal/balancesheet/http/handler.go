// Package http wires the balance sheet generator to the HTTP API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sekkizharvdt/vapourtoolbox/internal/balancesheet"
	"github.com/sekkizharvdt/vapourtoolbox/internal/platform/httpx"
)

// ReportService generates balance sheet reports.
type ReportService interface {
	Generate(ctx context.Context, asOf time.Time) (balancesheet.Report, error)
}

// Handler serves balance sheet endpoints.
type Handler struct {
	logger  *slog.Logger
	service ReportService
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers balance sheet endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bs", h.handleGet)
	r.Get("/bs/validate", h.handleValidate)
}

func (h *Handler) asOf(r *http.Request) time.Time {
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			return parsed
		}
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Generate(r.Context(), h.asOf(r))
	if err != nil {
		h.logger.Error("generate balance sheet", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Generate(r.Context(), h.asOf(r))
	if err != nil {
		h.logger.Error("generate balance sheet", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"balanced":   report.Balanced,
		"difference": report.Difference,
		"message":    balancesheet.ValidateAccountingEquation(report),
	})
}
