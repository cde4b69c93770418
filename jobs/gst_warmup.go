package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sekkizharvdt/vapourtoolbox/internal/gst"
)

// GSTWarmupJob pre-populates the report cache so the first interactive request
// of the day does not pay the generation cost.
type GSTWarmupJob struct {
	Service *gst.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewGSTWarmupJob wires dependencies for the warmup handler.
func NewGSTWarmupJob(service *gst.Service, logger *slog.Logger) *GSTWarmupJob {
	return &GSTWarmupJob{
		Service: service,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes gst:warmup tasks: the three returns are generated in
// sequence for the selected month, populating the cache as a side effect.
func (j *GSTWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("gst warmup: handler not configured")
	}
	var payload GSTWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	from, to := monthWindow(payload, j.clock())
	logger := j.Logger.With(slog.String("from", from.Format("2006-01-02")), slog.String("to", to.Format("2006-01-02")))

	if _, err := j.Service.GenerateGSTR1(ctx, from, to, payload.GSTIN, payload.LegalName); err != nil {
		logger.Error("warm gstr1", slog.Any("error", err))
		return err
	}
	if _, err := j.Service.GenerateGSTR2(ctx, from, to); err != nil {
		logger.Error("warm gstr2", slog.Any("error", err))
		return err
	}
	if _, err := j.Service.GenerateGSTR3B(ctx, from, to, payload.GSTIN, payload.LegalName); err != nil {
		logger.Error("warm gstr3b", slog.Any("error", err))
		return err
	}

	logger.Info("gst warmup complete")
	return nil
}

// monthWindow resolves the payload month to its first and last day, defaulting
// to the month before now.
func monthWindow(payload GSTWarmupPayload, now time.Time) (time.Time, time.Time) {
	year, month := payload.Year, time.Month(payload.Month)
	if payload.Month == 0 || payload.Year == 0 {
		prev := now.AddDate(0, -1, -now.Day()+1)
		year, month = prev.Year(), prev.Month()
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}
