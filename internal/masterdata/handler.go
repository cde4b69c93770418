package masterdata

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sekkizharvdt/vapourtoolbox/internal/platform/httpx"
)

// Handler serves the lookup tables to API consumers.
type Handler struct{}

// NewHandler constructs the handler.
func NewHandler() *Handler {
	return &Handler{}
}

// MountRoutes registers the masterdata endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/payment-methods", h.handlePaymentMethods)
	r.Get("/currencies", h.handleCurrencies)
	r.Get("/tds-sections", h.handleTDSSections)
	r.Get("/gst-slabs", h.handleGSTSlabs)
}

func (h *Handler) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, PaymentMethods())
}

func (h *Handler) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, Currencies())
}

func (h *Handler) handleTDSSections(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, TDSSections())
}

func (h *Handler) handleGSTSlabs(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, GSTRateSlabs())
}
