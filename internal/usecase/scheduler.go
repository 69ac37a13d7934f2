package usecase

import (
	"context"
	"time"

	"PromiseDetector/internal/ports"
)

// Scheduler wires the interval driver with the audit pipeline.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	cases    []Case
}

// NewScheduler returns a helper to start/stop recurring audit passes.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, cases []Case) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, cases: cases}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(_ time.Time) {
		_ = s.pipeline.Run(ctx, s.cases)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
