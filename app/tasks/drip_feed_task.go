package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fabriziochiappini/adseo/app/dripfeed"
)

// DripFeedTask drains one batch of due queue items. Per-item failures
// are handled inside the runner; only batch-level failures bubble up
// and trigger the scheduler's retry.
type DripFeedTask struct {
	Task
	runner *dripfeed.Runner
}

func NewDripFeedTask(runner *dripfeed.Runner) *DripFeedTask {
	return &DripFeedTask{
		Task:   NewTask(TaskTypeDripFeed),
		runner: runner,
	}
}

func (t *DripFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	report, err := t.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("drip-feed run: %w", err)
	}

	if report.Processed > 0 {
		slog.Info("Task completed",
			"type", "DripFeed",
			"duration", t.GetDuration(),
			"processed", report.Processed,
			"completed", report.Completed,
			"failed", report.Failed)
	}

	return nil
}
