// Package scheduler owns the daily background jobs: an explicit component
// with named, independently triggerable jobs rather than fire-and-forget
// cron registration at process start.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AnhKhoi2/FARMHUB-V2-sub000/internal/logger"

	"github.com/robfig/cron/v3"
)

// ErrUnknownJob is returned when a manual trigger names an unregistered job.
var ErrUnknownJob = errors.New("unknown job")

// Job is one named scheduled task. Run must tolerate being invoked both on
// a timer and manually, with identical semantics.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler fires registered jobs on cron schedules and exposes each for
// manual triggering. Cron expressions are evaluated in UTC so that fixed
// UTC times correspond to fixed wall-clock times in the civil zone.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger

	mu   sync.Mutex
	jobs map[string]Job
}

// New creates an empty scheduler
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		log:  logger.New(),
		jobs: make(map[string]Job),
	}
}

// Register adds a job under the given cron expression. Timer-driven runs log
// failures; they never propagate, since the next scheduled run retries the
// same scan and the jobs are idempotent per day.
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("job %q already registered", job.Name())
	}

	_, err := s.cron.AddFunc(spec, func() {
		log := logger.ForJob(job.Name())
		log.Info("scheduled run starting")
		if err := job.Run(context.Background()); err != nil {
			log.WithError(err).Error("scheduled run failed")
			return
		}
		log.Info("scheduled run finished")
	})
	if err != nil {
		return fmt.Errorf("register job %q with spec %q: %w", job.Name(), spec, err)
	}

	s.jobs[job.Name()] = job
	return nil
}

// RunNow triggers one registered job by name, outside its schedule. The
// job runs with the caller's context, so a manual trigger can be cancelled
// between records like any other run.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
	return job.Run(ctx)
}

// JobNames lists the registered job names
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

// Start begins timer-driven execution
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("jobs", len(s.jobs)).Info("scheduler started")
}

// Stop halts timer-driven execution and waits for in-flight runs. Jobs
// check their context between records, so shutdown never interrupts a
// record mid-write.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}
