// Package scheduler runs recurring background jobs on cron schedules.
package scheduler

import (
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron   *cron.Cron
	logger logger.Logger
}

// New creates a new scheduler using standard 5-field cron schedules
func New(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &Scheduler{
		cron:   cron.New(),
		logger: log.WithField("component", "scheduler"),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", nil)
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped", nil)
}

// AddJob registers a new job with a cron schedule.
// Schedule examples:
//   - "*/5 * * * *"   - Every 5 minutes
//   - "@monthly"      - Midnight on the first of each month
//   - "0 6 1 * *"     - 06:00 on the first of each month
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.logger.Debug("Running job", map[string]interface{}{
			"job": job.Name(),
		})

		if err := job.Run(); err != nil {
			s.logger.Error("Job failed", map[string]interface{}{
				"job":   job.Name(),
				"error": err.Error(),
			})
		} else {
			s.logger.Debug("Job completed", map[string]interface{}{
				"job": job.Name(),
			})
		}
	})

	if err != nil {
		return err
	}

	s.logger.Info("Job registered", map[string]interface{}{
		"schedule": schedule,
		"job":      job.Name(),
	})

	return nil
}

// RunNow executes a job immediately, outside its schedule
func (s *Scheduler) RunNow(job Job) error {
	s.logger.Info("Running job immediately", map[string]interface{}{
		"job": job.Name(),
	})
	return job.Run()
}
