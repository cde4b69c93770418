package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/sekkizharvdt/vapourtoolbox/internal/app"
	"github.com/sekkizharvdt/vapourtoolbox/internal/balancesheet"
	bshttp "github.com/sekkizharvdt/vapourtoolbox/internal/balancesheet/http"
	"github.com/sekkizharvdt/vapourtoolbox/internal/gst"
	gsthttp "github.com/sekkizharvdt/vapourtoolbox/internal/gst/http"
	"github.com/sekkizharvdt/vapourtoolbox/internal/masterdata"
	"github.com/sekkizharvdt/vapourtoolbox/internal/platform/db"
	"github.com/sekkizharvdt/vapourtoolbox/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	gstRepo := gst.NewRepository(pool)
	gstCache := gst.NewCache(redisClient, cfg.ReportCacheTTL)
	gstService := gst.NewService(gstRepo, gstCache)
	gstHandler := gsthttp.NewHandler(logger, gstService, gstRepo, cfg.FilerGSTIN, cfg.FilerLegalName)

	bsRepo := balancesheet.NewRepository(pool)
	bsService := balancesheet.NewService(bsRepo, logger)
	bsHandler := bshttp.NewHandler(logger, bsService)

	masterDataHandler := masterdata.NewHandler()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		GSTHandler:          gstHandler,
		BalanceSheetHandler: bsHandler,
		MasterDataHandler:   masterDataHandler,
		JobHandler:          jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
