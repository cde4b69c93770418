// Package http wires the GST report engine to the HTTP API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/sekkizharvdt/vapourtoolbox/internal/gst"
	"github.com/sekkizharvdt/vapourtoolbox/internal/gst/export"
	"github.com/sekkizharvdt/vapourtoolbox/internal/platform/httpx"
)

// ReportService generates GST returns for a date window.
type ReportService interface {
	GenerateGSTR1(ctx context.Context, from, to time.Time, gstin, legalName string) (gst.GSTR1, error)
	GenerateGSTR2(ctx context.Context, from, to time.Time) (gst.GSTR2, error)
	GenerateGSTR3B(ctx context.Context, from, to time.Time, gstin, legalName string) (gst.GSTR3B, error)
}

// SnapshotStore persists generated returns for audit.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap gst.Snapshot) error
}

// Handler serves GST report endpoints.
type Handler struct {
	logger    *slog.Logger
	service   ReportService
	snapshots SnapshotStore
	validate  *validator.Validate
	rateLimit func(http.Handler) http.Handler

	defaultGSTIN     string
	defaultLegalName string
}

// NewHandler constructs the handler. Export endpoints are rate limited per
// client IP since portal JSON generation walks the whole window.
func NewHandler(logger *slog.Logger, service ReportService, snapshots SnapshotStore, defaultGSTIN, defaultLegalName string) *Handler {
	return &Handler{
		logger:           logger,
		service:          service,
		snapshots:        snapshots,
		validate:         validator.New(),
		rateLimit:        httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
		defaultGSTIN:     defaultGSTIN,
		defaultLegalName: defaultLegalName,
	}
}

// MountRoutes registers the GST endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/gstr1", h.handleGSTR1)
	r.Get("/gstr2", h.handleGSTR2)
	r.Get("/gstr3b", h.handleGSTR3B)
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/gstr1/export.json", h.handleGSTR1Export)
		r.Get("/gstr3b/export.json", h.handleGSTR3BExport)
		r.Post("/gstr1/snapshots", h.handleGSTR1Snapshot)
		r.Post("/gstr3b/snapshots", h.handleGSTR3BSnapshot)
	})
}

type reportQuery struct {
	From  string `validate:"required,datetime=2006-01-02"`
	To    string `validate:"required,datetime=2006-01-02"`
	GSTIN string `validate:"omitempty,len=15,alphanum"`
}

type reportWindow struct {
	From      time.Time
	To        time.Time
	GSTIN     string
	LegalName string
}

func (h *Handler) parseWindow(r *http.Request) (reportWindow, error) {
	q := reportQuery{
		From:  r.URL.Query().Get("from"),
		To:    r.URL.Query().Get("to"),
		GSTIN: r.URL.Query().Get("gstin"),
	}
	if err := h.validate.Struct(q); err != nil {
		return reportWindow{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	from, _ := time.Parse("2006-01-02", q.From)
	to, _ := time.Parse("2006-01-02", q.To)
	if to.Before(from) {
		return reportWindow{}, fmt.Errorf("%w: window end before start", httpx.ErrValidation)
	}

	win := reportWindow{From: from, To: to, GSTIN: q.GSTIN, LegalName: r.URL.Query().Get("legal_name")}
	if win.GSTIN == "" {
		win.GSTIN = h.defaultGSTIN
	}
	if win.LegalName == "" {
		win.LegalName = h.defaultLegalName
	}
	return win, nil
}

func (h *Handler) handleGSTR1(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.buildGSTR1(r, win)
	if err != nil {
		h.logger.Error("generate gstr1", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleGSTR2(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	result, err, _ := singleflightBuild(r.Context(), buildKey("gstr2", win), func(ctx context.Context) (interface{}, error) {
		return h.service.GenerateGSTR2(ctx, win.From, win.To)
	})
	if err != nil {
		h.logger.Error("generate gstr2", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleGSTR3B(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.buildGSTR3B(r, win)
	if err != nil {
		h.logger.Error("generate gstr3b", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleGSTR1Export(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.buildGSTR1(r, win)
	if err != nil {
		h.logger.Error("export gstr1", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	body, err := export.GSTR1JSON(report)
	if err != nil {
		h.logger.Error("export gstr1", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Attachment(w, exportFilename("gstr1", report.Period), "application/json", body)
}

func (h *Handler) handleGSTR3BExport(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.buildGSTR3B(r, win)
	if err != nil {
		h.logger.Error("export gstr3b", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	body, err := export.GSTR3BJSON(report)
	if err != nil {
		h.logger.Error("export gstr3b", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Attachment(w, exportFilename("gstr3b", report.Period), "application/json", body)
}

func (h *Handler) handleGSTR1Snapshot(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.buildGSTR1(r, win)
	if err != nil {
		h.logger.Error("snapshot gstr1", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.saveSnapshot(w, r, "GSTR1", report.Period, report)
}

func (h *Handler) handleGSTR3BSnapshot(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.buildGSTR3B(r, win)
	if err != nil {
		h.logger.Error("snapshot gstr3b", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.saveSnapshot(w, r, "GSTR3B", report.Period, report)
}

func (h *Handler) saveSnapshot(w http.ResponseWriter, r *http.Request, reportType string, period gst.Period, report interface{}) {
	snap, err := gst.NewSnapshot(reportType, period, report)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.snapshots.SaveSnapshot(r.Context(), snap); err != nil {
		if err == gst.ErrSnapshotExists {
			httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrDuplicate, err))
			return
		}
		h.logger.Error("save snapshot", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": snap.ID.String(), "period": snap.Period})
}

func (h *Handler) buildGSTR1(r *http.Request, win reportWindow) (gst.GSTR1, error) {
	result, err, _ := singleflightBuild(r.Context(), buildKey("gstr1", win), func(ctx context.Context) (interface{}, error) {
		return h.service.GenerateGSTR1(ctx, win.From, win.To, win.GSTIN, win.LegalName)
	})
	if err != nil {
		return gst.GSTR1{}, err
	}
	return result.(gst.GSTR1), nil
}

func (h *Handler) buildGSTR3B(r *http.Request, win reportWindow) (gst.GSTR3B, error) {
	result, err, _ := singleflightBuild(r.Context(), buildKey("gstr3b", win), func(ctx context.Context) (interface{}, error) {
		return h.service.GenerateGSTR3B(ctx, win.From, win.To, win.GSTIN, win.LegalName)
	})
	if err != nil {
		return gst.GSTR3B{}, err
	}
	return result.(gst.GSTR3B), nil
}

func buildKey(report string, win reportWindow) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", report, win.From.Format("2006-01-02"), win.To.Format("2006-01-02"), win.GSTIN, win.LegalName)
}

func exportFilename(report string, p gst.Period) string {
	return fmt.Sprintf("%s-%02d%04d.json", report, p.Month, p.Year)
}
