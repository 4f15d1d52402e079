package app

import (
	"context"
	"log/slog"
	"time"

	"quote-history/internal/crawl"
	"quote-history/internal/datafeed"
	"quote-history/internal/model"
)

// Batch describes what one scheduled run fetches. To zero means "today" at run time.
type Batch struct {
	Targets  []crawl.Target
	Interval model.Interval
	From     time.Time
	To       time.Time
}

// RunOnce plans jobs against the progress file and runs them.
func RunOnce(ctx context.Context, cfg *Config, runner *crawl.Runner, b Batch) crawl.Summary {
	to := b.To
	if to.IsZero() {
		to = today(time.Now())
	}
	jobs := crawl.PlanJobs(b.Targets, b.Interval, cfg.ProgressPath(), b.From, to)
	slog.Info("planned jobs", "jobs", len(jobs), "targets", len(b.Targets), "interval", b.Interval,
		"from", b.From.Format("2006-01-02"), "to", to.Format("2006-01-02"))
	return runner.Run(ctx, jobs)
}

// RunFlow orchestrates the daily loop: run → wait for RUN_HOUR:RUN_MINUTE (China time) → run.
// It returns when ctx is canceled; an in-flight run finishes its started jobs first.
func RunFlow(ctx context.Context, cfg *Config, runner *crawl.Runner, b Batch) {
	for {
		sum := RunOnce(ctx, cfg, runner, b)
		slog.Info("done, wait until next run", "run_id", sum.RunID, "success", sum.Success, "failed", sum.Failed)
		if ctx.Err() != nil {
			slog.Info("shutdown requested, stopping")
			return
		}

		nextRun := nextRunTime(time.Now(), cfg.RunHour, cfg.RunMinute)
		waitDur := time.Until(nextRun)
		slog.Info("timer waiting", "hours", waitDur.Hours(), "until", nextRun.Format("2006-01-02 15:04"))
		timer := time.NewTimer(waitDur)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			slog.Info("shutdown requested, stopping", "restart_at", nextRun.Format("2006-01-02 15:04"))
			return
		}
	}
}

// nextRunTime returns the next hour:min in China time strictly after now.
func nextRunTime(now time.Time, hour, min int) time.Time {
	now = now.In(datafeed.ChinaTZ)
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, datafeed.ChinaTZ)
	if now.Before(target) {
		return target
	}
	return target.AddDate(0, 0, 1)
}

func today(now time.Time) time.Time {
	now = now.In(datafeed.ChinaTZ)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, datafeed.ChinaTZ)
}
