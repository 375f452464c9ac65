// Package scheduler runs the periodic maintenance jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one periodic task. The context is cancelled after the job timeout.
type Job func(ctx context.Context)

type Scheduler struct {
	c       *cron.Cron
	timeout time.Duration
}

// NewScheduler creates a scheduler whose jobs run with the given timeout
func NewScheduler(timeout time.Duration) *Scheduler {
	return &Scheduler{
		c:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		timeout: timeout,
	}
}

// Add registers a job. An empty spec leaves the job disabled.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if spec == "" {
		logrus.Infof("Job %s disabled (no schedule)", name)
		return nil
	}

	_, err := s.c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		started := time.Now()
		job(ctx)
		logrus.Debugf("Job %s finished in %s", name, time.Since(started))
	})
	if err != nil {
		return fmt.Errorf("error scheduling job %s (%q): %w", name, spec, err)
	}

	logrus.Infof("Job %s scheduled (%s)", name, spec)
	return nil
}

func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
