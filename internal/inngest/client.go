package inngest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// New registers the daily function on inngestClient. The tasks run in order
// on the cron schedule and whenever EventRefreshRequested is received; each
// is its own step so Inngest retries them independently.
func New(inngestClient inngestgo.Client, cron string, tasks ...Task) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		tasks:         tasks,
	}
	if cron == "" {
		cron = DefaultCron
	}
	if err := c.createDailyFunction(cron); err != nil {
		return nil, err
	}
	return c, nil
}

func (i *client) createDailyFunction(cron string) error {
	config := inngestgo.FunctionOpts{
		ID:   DailyFunctionID,
		Name: "Roll slot window and sync external bookings",
	}
	_, err := inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.MultipleTriggers{
			inngestgo.CronTrigger(cron),
			inngestgo.EventTrigger(EventRefreshRequested, nil),
		},
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			completed := make([]string, 0, len(i.tasks))
			for _, task := range i.tasks {
				_, err := step.Run(ctx, task.Name, func(ctx context.Context) (string, error) {
					if err := task.Run(ctx); err != nil {
						log.Error("Daily task failed", "task", task.Name, "error", err)
						return "", err
					}
					log.Info("Daily task finished", "task", task.Name)
					return "OK", nil
				})
				if err != nil {
					return nil, err
				}
				completed = append(completed, task.Name)
			}
			return map[string]any{"completed": completed}, nil
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create function %s: %w", DailyFunctionID, err)
	}
	return nil
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}

// RunAll runs tasks in order outside Inngest, stopping at the first error.
// It backs the manual refresh endpoint.
func RunAll(ctx context.Context, tasks ...Task) error {
	for _, task := range tasks {
		if err := task.Run(ctx); err != nil {
			return fmt.Errorf("%s: %w", task.Name, err)
		}
	}
	return nil
}
