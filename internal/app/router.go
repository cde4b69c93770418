package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	bshttp "github.com/sekkizharvdt/vapourtoolbox/internal/balancesheet/http"
	gsthttp "github.com/sekkizharvdt/vapourtoolbox/internal/gst/http"
	"github.com/sekkizharvdt/vapourtoolbox/internal/masterdata"
	"github.com/sekkizharvdt/vapourtoolbox/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	GSTHandler          *gsthttp.Handler
	BalanceSheetHandler *bshttp.Handler
	MasterDataHandler   *masterdata.Handler
	JobHandler          *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.GSTHandler != nil {
		r.Route("/gst", params.GSTHandler.MountRoutes)
	}
	if params.BalanceSheetHandler != nil {
		r.Route("/finance", params.BalanceSheetHandler.MountRoutes)
	}
	if params.MasterDataHandler != nil {
		r.Route("/masterdata", params.MasterDataHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
