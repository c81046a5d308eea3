package inngest

import (
	"context"

	"github.com/inngest/inngestgo"
)

const (
	// DailyFunctionID identifies the scheduled maintenance function.
	DailyFunctionID = "daily-schedule"
	// EventRefreshRequested runs the daily tasks on demand.
	EventRefreshRequested = "club/schedule.refresh-requested"
	// DefaultCron runs the daily tasks shortly after midnight UTC.
	DefaultCron = "TZ=UTC 5 0 * * *"
)

// Task is one step of the daily run.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type client struct {
	inngestClient inngestgo.Client
	tasks         []Task
}
