// Package scheduler enqueues the catalog's periodic maintenance tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/locallibrary/internal/logger"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands a task to the background queue. Implemented by tasks.Client.
type Enqueuer interface {
	Enqueue(task backlite.Task) error
}

// Job enqueues Task on Schedule (five-field cron).
// An empty schedule disables the job.
type Job struct {
	Name     string
	Schedule string
	Task     func() backlite.Task
}

// MaintenanceScheduler runs a fixed set of Jobs.
type MaintenanceScheduler struct {
	enqueuer Enqueuer
	jobs     []Job

	cron       *cron.Cron
	entries    map[string]cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewMaintenanceScheduler(enqueuer Enqueuer, jobs ...Job) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		enqueuer: enqueuer,
		jobs:     jobs,
		cron:     cron.New(cron.WithParser(parser)),
		entries:  make(map[string]cron.EntryID),
	}
}

// ValidateSchedule reports whether spec is a valid five-field cron expression.
func ValidateSchedule(spec string) error {
	_, err := parser.Parse(spec)
	return err
}

// Start registers every enabled job and starts the cron loop.
// The scheduler stops when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	log := logger.Component("scheduler")
	for _, job := range s.jobs {
		if job.Schedule == "" {
			log.Info().Str("job", job.Name).Msg("Scheduled job disabled")
			continue
		}
		if err := ValidateSchedule(job.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", job.Schedule, job.Name, err)
		}

		id, err := s.cron.AddFunc(job.Schedule, func() { s.run(job) })
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
		}
		s.entries[job.Name] = id
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	for name, id := range s.entries {
		log.Info().Str("job", name).Time("next_run", s.cron.Entry(id).Next).Msg("Scheduled job registered")
	}

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	logger.Component("scheduler").Info().Msg("Maintenance scheduler stopped")
}

// RunNow enqueues the named job immediately.
func (s *MaintenanceScheduler) RunNow(name string) error {
	for _, job := range s.jobs {
		if job.Name == name {
			return s.enqueuer.Enqueue(job.Task())
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the named job fires next, or nil if it isn't scheduled.
func (s *MaintenanceScheduler) NextRunTime(name string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entries[name]
	if !s.isRunning || !ok {
		return nil
	}
	t := s.cron.Entry(id).Next
	return &t
}

func (s *MaintenanceScheduler) run(job Job) {
	log := logger.Component("scheduler")
	if err := s.enqueuer.Enqueue(job.Task()); err != nil {
		log.Error().Err(err).Str("job", job.Name).Msg("Failed to enqueue scheduled job")
		return
	}
	log.Info().Str("job", job.Name).Msg("Scheduled job enqueued")
}
