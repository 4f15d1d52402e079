package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"quote-history/internal/datafeed"
	"quote-history/internal/model"
	"quote-history/internal/saver"
	"quote-history/internal/slogx"
)

const dayLayout = "2006-01-02"

// Job represents one fetch unit (instrument + interval + date range)
type Job struct {
	Target   Target
	Interval model.Interval
	From     time.Time
	To       time.Time
}

// Key identifies the job's progress entry.
func (j Job) Key() string {
	return progressKey(j.Target, j.Interval)
}

// DateRange formats the job window as "from..to".
func (j Job) DateRange() string {
	return j.From.Format(dayLayout) + ".." + j.To.Format(dayLayout)
}

// Request converts the job into a history request.
func (j Job) Request() model.HistoryRequest {
	return model.HistoryRequest{
		Symbol:   j.Target.Symbol,
		Exchange: j.Target.Exchange,
		Interval: j.Interval,
		Start:    j.From,
		End:      j.To,
	}
}

// JobResult is sent by workers for fan-in
type JobResult struct {
	Ok        bool
	Key       string
	DateRange string
	Reason    string
	Bars      int
	LastDate  string
}

// PlanJobs returns one job per target: no progress → [from, to]; has progress → (lastdate, to].
// Targets already up to date are skipped.
func PlanJobs(targets []Target, interval model.Interval, progressPath string, from, to time.Time) []Job {
	m := loadProgress(progressPath)
	var jobs []Job
	for _, t := range targets {
		start := from
		if last, ok := m[progressKey(t, interval)]; ok {
			if d, err := time.ParseInLocation(dayLayout, last, datafeed.ChinaTZ); err == nil {
				if next := d.AddDate(0, 0, 1); next.After(start) {
					start = next
				}
			}
		}
		if start.After(to) {
			continue
		}
		jobs = append(jobs, Job{Target: t, Interval: interval, From: start, To: to})
	}
	return jobs
}

// Summary is the outcome of one Run.
type Summary struct {
	RunID       string
	Success     int
	Failed      int
	Bars        int
	SuccessList []string
	FailedList  []failedEntry
}

// Runner fetches many jobs with a bounded worker pool and saves each result.
type Runner struct {
	Fetcher      *datafeed.Fetcher
	Saver        saver.PacketSaver // nil skips saving
	SaveDir      string
	ProgressPath string
	Workers      int
	LogLevel     string
	Heartbeat    time.Duration
}

// Run fetches jobs until done or ctx is canceled; jobs not started before cancellation are
// not reported. It writes the run report and progress file before returning.
func (r *Runner) Run(ctx context.Context, jobs []Job) Summary {
	sum := Summary{RunID: uuid.NewString()}
	if len(jobs) == 0 {
		slog.Info("no jobs to fetch, skip")
		return sum
	}

	logs := make(chan string, 2048)
	logger := slogx.NewChanLogger(logs, r.LogLevel).With("run_id", sum.RunID)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		runLogWriter(os.Stdout, logs)
	}()

	progressUpdates := make(chan ProgressUpdate, len(jobs))
	var progWg sync.WaitGroup
	progWg.Add(1)
	go func() {
		defer progWg.Done()
		RunProgressWriter(r.ProgressPath, progressUpdates)
	}()

	results := make(chan JobResult, len(jobs))
	var mu sync.Mutex
	var resWg sync.WaitGroup
	resWg.Add(1)
	go func() {
		defer resWg.Done()
		runJobResultCollector(results, &mu, &sum)
	}()

	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	heartbeat := r.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	var hbWg sync.WaitGroup
	hbWg.Add(1)
	go func() {
		defer hbWg.Done()
		runHeartbeat(hbCtx, heartbeat, len(jobs), &mu, &sum, logger)
	}()

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for _, job := range jobs {
		if ctx.Err() != nil {
			logger.Warn("run canceled, remaining jobs skipped")
			break
		}
		job := job
		g.Go(func() error {
			res := r.runJob(ctx, logger, job)
			results <- res
			if res.Ok {
				progressUpdates <- ProgressUpdate{Key: res.Key, Date: res.LastDate}
			}
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	resWg.Wait()
	stopHeartbeat()
	hbWg.Wait()
	close(progressUpdates)
	progWg.Wait()

	logger.Info("summary", "total_bars", sum.Bars, "success", sum.Success, "failed", sum.Failed)
	if len(sum.FailedList) > 0 {
		logger.Info("summary failed", "count", len(sum.FailedList), "reasons", joinFailedReasons(sum.FailedList))
	}
	close(logs)
	logWg.Wait()

	if err := writeRunReport(r.SaveDir, sum.SuccessList, sum.FailedList); err != nil {
		slog.Warn("could not write run report", "error", err)
	}
	return sum
}

func (r *Runner) runJob(ctx context.Context, logger *slog.Logger, job Job) JobResult {
	res := JobResult{Key: job.Key(), DateRange: job.DateRange()}
	output := func(msg string) { logger.Warn(msg, "job", res.Key) }

	bars, err := r.Fetcher.QueryBarHistory(ctx, job.Request(), output)
	switch {
	case err != nil:
		res.Reason = err.Error()
	case len(bars) == 0:
		res.Reason = "no data"
	default:
		if err := r.save(job, bars); err != nil {
			res.Reason = fmt.Sprintf("save: %v", err)
			break
		}
		res.Ok = true
		res.Bars = len(bars)
		res.LastDate = datafeed.LabelDate(bars[len(bars)-1]).Format(dayLayout)
	}

	if res.Ok {
		logger.Info("fetch ok", "job", res.Key, "date_range", res.DateRange, "bars", res.Bars)
	} else {
		logger.Error("fetch fail", "job", res.Key, "date_range", res.DateRange, "reason", res.Reason)
	}
	return res
}

// save writes bars to SaveDir/{SYMBOL.EXCHANGE}/{symbol}_{interval}_{from}_to_{to}.{ext}.
func (r *Runner) save(job Job, bars []model.Bar) error {
	if r.Saver == nil || r.SaveDir == "" {
		return nil
	}
	dir := filepath.Join(r.SaveDir, job.Target.Key())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s_%s_to_%s.%s", job.Target.Symbol, job.Interval,
		job.From.Format(dayLayout), job.To.Format(dayLayout), r.Saver.Extension())
	return r.Saver.Save(bars, filepath.Join(dir, name))
}

func runJobResultCollector(results <-chan JobResult, mu *sync.Mutex, sum *Summary) {
	for res := range results {
		mu.Lock()
		if res.Ok {
			sum.Success++
			sum.Bars += res.Bars
			sum.SuccessList = appendSuccess(sum.SuccessList, res.Key)
		} else {
			sum.Failed++
			sum.FailedList = append(sum.FailedList, failedEntry{Key: res.Key, DateRange: res.DateRange, Reason: res.Reason})
		}
		mu.Unlock()
	}
	mu.Lock()
	sort.Strings(sum.SuccessList)
	mu.Unlock()
}
