package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// JobFunc represents a function that can be scheduled.
type JobFunc func(ctx context.Context) error

// Scheduler runs the background maintenance jobs.
type Scheduler struct {
	gocron gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler.
func New() (*Scheduler, error) {
	gocronScheduler, err := gocron.NewScheduler(gocron.WithLogger(newLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		gocron: gocronScheduler,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// AddJob registers a job to run at the given interval. Only one instance of
// a job runs at a time.
func (s *Scheduler) AddJob(name string, interval time.Duration, jobFunc JobFunc) error {
	_, err := s.gocron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := jobFunc(s.ctx); err != nil {
				log.Error("job failed", "name", name, "error", err)
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.gocron.Start()
	log.Info("job scheduler started")
}

// Stop stops the scheduler and cancels running jobs.
func (s *Scheduler) Stop() error {
	log.Info("stopping job scheduler")
	s.cancel()
	return s.gocron.Shutdown()
}
