// Package scheduler runs the recurring maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one recurring unit of work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with logging and panic recovery around
// each registered job.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
	ctx  context.Context
}

// New creates a scheduler. Jobs run with the given base context.
func New(ctx context.Context, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
		ctx:  ctx,
	}
}

// Register adds a named job on a standard 5-field cron spec.
func (s *Scheduler) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	s.log.Info().Str("job", name).Str("spec", spec).Msg("Job registered")
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop stops scheduling new runs and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) run(name string, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("job", name).Interface("panic", r).Msg("Job panicked")
		}
	}()

	s.log.Info().Str("job", name).Msg("Job starting")
	startTime := time.Now()

	if err := job(s.ctx); err != nil {
		s.log.Error().Err(err).Str("job", name).Msg("Job failed")
		return
	}

	s.log.Info().
		Str("job", name).
		Dur("duration_ms", time.Since(startTime)).
		Msg("Job completed")
}
