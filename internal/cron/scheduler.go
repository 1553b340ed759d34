package cron

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/graphql-crm/pkg/correlationid"
)

// Job is a named unit of work repeated every Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Scheduler runs each job in its own goroutine on a fixed interval.
type Scheduler struct {
	logger *slog.Logger
	jobs   []Job

	stopChan chan struct{}
}

func NewScheduler(logger *slog.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{
		logger:   logger.With(slog.String("service", "cron")),
		jobs:     jobs,
		stopChan: make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Scheduler) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Go(func() {
			s.loop(ctx, job)
		})
	}

	stoppedChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(stoppedChan)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	s.logger.InfoContext(ctx, "job scheduled",
		slog.String("job", job.Name),
		slog.Duration("interval", job.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-time.After(job.Interval):
			s.execute(ctx, job)
		}
	}
}

// RunOnce executes the named jobs sequentially. All names are checked first.
func (s *Scheduler) RunOnce(ctx context.Context, names ...string) error {
	byName := make(map[string]Job, len(s.jobs))
	for _, job := range s.jobs {
		byName[job.Name] = job
	}

	selected := make([]Job, 0, len(names))
	for _, name := range names {
		job, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown job %q", name)
		}
		selected = append(selected, job)
	}

	for _, job := range selected {
		s.execute(ctx, job)
	}

	return nil
}

// Names lists the registered jobs in registration order.
func (s *Scheduler) Names() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name
	}
	return names
}

// execute runs job once under a fresh correlation ID.
func (s *Scheduler) execute(ctx context.Context, job Job) {
	ctx = correlationid.NewContext(ctx, correlationid.New())
	start := time.Now()
	defer func() {
		if rvr := recover(); rvr != nil {
			s.logger.ErrorContext(ctx, "panic in job",
				slog.String("job", job.Name),
				slog.Any("recover", rvr),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	job.Run(ctx)

	s.logger.InfoContext(ctx, "job finished",
		slog.String("job", job.Name),
		slog.Duration("duration", time.Since(start)),
	)
}
