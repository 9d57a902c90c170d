package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"
)

const (
	DefaultSchedule = "5 * * * *" // minute 5 of every hour
	JobTimeout      = 30 * time.Minute
)

// Job is one timer firing.
type Job func(ctx context.Context) error

// Observer is told about every firing, e.g. to count failed invocations.
type Observer interface {
	ObserveTrigger(trigger string, err error)
}

type Crontab struct {
	ctab         *crontab.Crontab
	schedule     string
	runOnStartup bool
	timeout      time.Duration
	job          Job
	observer     Observer
	log          zerolog.Logger
}

func NewCrontab(schedule string, runOnStartup bool, job Job, observer Observer, log zerolog.Logger) *Crontab {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Crontab{
		ctab:         crontab.New(),
		schedule:     schedule,
		runOnStartup: runOnStartup,
		timeout:      JobTimeout,
		job:          job,
		observer:     observer,
		log:          log,
	}
}

// Run schedules the job, optionally fires it once immediately, and blocks until
// ctx is done. Overlapping firings are not prevented.
func (c *Crontab) Run(ctx context.Context) error {
	defer c.ctab.Shutdown()

	if err := c.ctab.AddJob(c.schedule, func() {
		_ = c.Trigger(ctx)
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", c.schedule, err)
	}
	c.log.Info().Str("schedule", c.schedule).Msg("probe run scheduled")

	// execute once on start
	if c.runOnStartup {
		_ = c.Trigger(ctx)
	}

	<-ctx.Done()
	return nil
}

// Trigger runs the job once with a timeout. Failures are logged at error level
// and returned.
func (c *Crontab) Trigger(ctx context.Context) error {
	jobCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	id := uuid.NewString()
	log := c.log.With().Str("trigger", "timer").Str("invocation_id", id).Logger()
	started := time.Now()
	log.Info().Msg("timer trigger started")

	err := c.job(jobCtx)
	if c.observer != nil {
		c.observer.ObserveTrigger("timer", err)
	}
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(started)).Msg("timer trigger failed")
		return err
	}
	log.Info().Dur("elapsed", time.Since(started)).Msg("timer trigger finished")
	return nil
}
