// Package schedulersvc runs background jobs on cron schedules.
package schedulersvc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/kalendar/core"
)

type Scheduler struct {
	cron   *cron.Cron
	logger core.Logger
}

// New returns a stopped scheduler evaluating schedules in the calendar time zone.
func New(conf *core.Config, logger core.Logger) *Scheduler {
	loc := conf.Calendar.Location
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Add registers job under a standard five field cron spec (or a descriptor such as "@daily").
func (s *Scheduler) Add(name, spec string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(context.Background()); err != nil {
			s.logger.Error("job failed: "+name, err)
			return
		}
		s.logger.Info("job done: "+name, map[string]interface{}{"took": time.Since(start).String()})
	})
	return errors.Wrapf(err, "scheduling %s", name)
}

// Jobs is the number of registered jobs.
func (s *Scheduler) Jobs() int { return len(s.cron.Entries()) }

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for the running jobs, or for ctx to be done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for running jobs")
	}
}

// cronLogger lets cron report through the app logger.
type cronLogger struct {
	logger core.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{err}, keysAndValues...)...)
}
