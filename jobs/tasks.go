// Package jobs defines background tasks and the Asynq worker around them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeGSTWarmup pre-generates a month's GST returns into the report cache.
	TaskTypeGSTWarmup = "gst:warmup"
)

// GSTWarmupPayload selects the filing month to warm. A zero month/year means
// the month preceding the task run.
type GSTWarmupPayload struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	GSTIN     string `json:"gstin"`
	LegalName string `json:"legalName"`
}

// NewGSTWarmupTask constructs an Asynq task.
func NewGSTWarmupTask(payload GSTWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeGSTWarmup, data), nil
}
