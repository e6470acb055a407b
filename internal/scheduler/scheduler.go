package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job is one periodic unit of work. Run receives a context bounded by Timeout.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	// SkipInitial delays the first run by one interval instead of running on start.
	SkipInitial bool
	Run         func(ctx context.Context) error
}

// Scheduler runs each job on its own goroutine and ticker; runs of one job never overlap.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger
}

func NewScheduler(logger *slog.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs:   jobs,
		logger: logger.With("component", "scheduler"),
	}
}

// Start blocks until ctx is done, then waits for in-flight runs to return.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, job := range s.jobs {
		if job.Interval <= 0 {
			return fmt.Errorf("job %s: interval must be positive", job.Name)
		}
		if job.Run == nil {
			return fmt.Errorf("job %s: no run func", job.Name)
		}
	}

	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, job)
		}()
	}

	s.logger.Info("scheduler started", "jobs", len(s.jobs))
	<-ctx.Done()
	wg.Wait()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	logger := s.logger.With("job", job.Name)
	logger.Info("job scheduled", "interval", job.Interval, "timeout", job.Timeout)

	if !job.SkipInitial {
		s.runJob(ctx, job, logger)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, job, logger)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job, logger *slog.Logger) {
	runCtx := ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	err := job.Run(runCtx)
	switch {
	case err == nil:
		logger.Info("job completed", "duration", time.Since(startTime))
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		logger.Info("job interrupted by shutdown")
	default:
		logger.Error("job failed", "error", err, "duration", time.Since(startTime))
	}
}
