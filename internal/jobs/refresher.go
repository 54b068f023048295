package jobs

import (
	"context"
	"log/slog"
	"time"

	"panorama/internal/config"
	"panorama/internal/report"
	"panorama/internal/snapshots"
)

// RefreshJob recomputes every derived summary from scratch and publishes the
// result to the snapshot store. Each run is independent; nothing carries
// over between cycles.
type RefreshJob struct {
	builder *report.Builder
	store   *snapshots.Store
	logger  *slog.Logger
	timeout time.Duration
}

// NewRefreshJob creates the refresh job. Each run is bounded by the poll
// interval so a stuck upstream cannot overlap the next cycle.
func NewRefreshJob(builder *report.Builder, store *snapshots.Store, logger *slog.Logger, cfg *config.Config) *RefreshJob {
	return &RefreshJob{
		builder: builder,
		store:   store,
		logger:  logger,
		timeout: cfg.PollInterval(),
	}
}

// Run executes one full refresh cycle: the general report plus every
// detail summary.
func (j *RefreshJob) Run() error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	rep := j.builder.BuildReport(ctx)
	j.store.SetReport(rep)

	summaries, failures := j.builder.BuildDetailSummaries(ctx)
	for key, summary := range summaries {
		j.store.SetSystem(key, summary)
	}
	for key, err := range failures {
		j.logger.Warn("Detail refresh failed",
			slog.String("system", key), slog.Any("error", err))
		j.store.SetSystemError(key, err)
	}

	j.logger.Info("Refresh cycle completed",
		slog.Int("systems", len(rep.Systems)),
		slog.Int("reportFailures", len(rep.Failures)),
		slog.Int("detailFailures", len(failures)),
		slog.Duration("elapsed", time.Since(start)))

	return nil
}
