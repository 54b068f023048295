// Package jobs runs the background refresh cycle on the poll interval.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"panorama/internal/config"
	"panorama/internal/report"
	"panorama/internal/snapshots"
)

// Scheduler is responsible for running the periodic refresh job
type Scheduler struct {
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	enabled   bool
	isRunning bool
	cfg       *config.Config

	// Mutex to prevent concurrent refresh executions
	processingMutex sync.Mutex
	isProcessing    bool

	refreshJob    *RefreshJob
	refreshTicker *time.Ticker
}

// NewScheduler creates the background scheduler driving the refresh job.
func NewScheduler(builder *report.Builder, store *snapshots.Store, logger *slog.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.GetConfig()

	s := &Scheduler{
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		enabled: true,
		cfg:     cfg,
	}

	s.refreshJob = NewRefreshJob(builder, store, logger, cfg)

	return s, nil
}

// executeJobSafely runs a job only if no other run is currently executing
func (s *Scheduler) executeJobSafely(jobName string, jobFunc func() error) {
	s.processingMutex.Lock()
	if s.isProcessing {
		s.logger.Debug("Skipping job execution - previous run still going", slog.String("job", jobName))
		s.processingMutex.Unlock()
		return
	}
	s.isProcessing = true
	s.processingMutex.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in background job",
				slog.String("job", jobName),
				slog.Any("panic", r))
		}

		s.processingMutex.Lock()
		s.isProcessing = false
		s.processingMutex.Unlock()
	}()

	if err := jobFunc(); err != nil {
		s.logger.Error("Error executing job", slog.String("job", jobName), slog.Any("error", err))
	}
}

// Start begins the background refresh loop
func (s *Scheduler) Start() error {
	if !s.enabled {
		s.logger.Info("Background jobs are disabled.")
		return nil
	}

	if s.isRunning {
		s.logger.Info("Background jobs already running.")
		return nil
	}

	s.isRunning = true

	interval := s.cfg.PollInterval()
	s.logger.Info("Starting refresh job", slog.Duration("interval", interval))
	s.refreshTicker = time.NewTicker(interval)

	go func() {
		// Run initial refresh so the store is populated before the first tick
		s.logger.Info("Running initial refresh...")
		s.executeJobSafely("refresh", s.refreshJob.Run)

		for {
			select {
			case <-s.refreshTicker.C:
				s.executeJobSafely("refresh", s.refreshJob.Run)
			case <-s.ctx.Done():
				s.logger.Info("Refresh job stopped")
				return
			}
		}
	}()

	return nil
}

// Stop halts the background refresh loop.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background jobs...")
	s.enabled = false

	if s.refreshTicker != nil {
		s.refreshTicker.Stop()
	}

	s.cancel()
	s.isRunning = false
	s.logger.Info("Background jobs stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	return s.isRunning
}

// Refresh allows manual triggering of a refresh cycle
func (s *Scheduler) Refresh() error {
	if !s.enabled {
		return nil
	}
	return s.refreshJob.Run()
}
