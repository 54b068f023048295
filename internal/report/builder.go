// Package report drives the full per-system pipeline (fetch, normalize,
// aggregate, analyze, forecast, compose insights) and assembles the
// render-ready summaries the HTTP layer serves.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"panorama/internal/analytics"
	"panorama/internal/config"
	"panorama/internal/pkg/async"
	"panorama/internal/records"
	"panorama/internal/source"
	"panorama/internal/systems"
)

// ChartPoint is one point of the combined observed+forecast chart series.
// Observed points carry Actual and a nil Predicted; forecast points the
// opposite, so the renderer can plot the two as distinct lines.
type ChartPoint struct {
	Date      string   `json:"date"`
	Actual    *float64 `json:"actual"`
	Predicted *float64 `json:"predicted"`
}

// SummaryMetric is one pre-formatted labeled value for the summary table.
type SummaryMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SystemSummary is the render-ready result of one system's pipeline run.
type SystemSummary struct {
	System         string                      `json:"system"`
	Name           string                      `json:"name"`
	ChartSeries    []ChartPoint                `json:"chart_series"`
	Analytics      analytics.SeriesAnalytics   `json:"analytics"`
	Prediction     analytics.PredictionSummary `json:"prediction"`
	Insights       []analytics.Insight         `json:"insights"`
	SummaryMetrics []SummaryMetric             `json:"summary_metrics"`
	UpdatedLabel   string                      `json:"updated_label"`
}

// SystemFailure records a system whose pipeline run failed this cycle.
type SystemFailure struct {
	System string `json:"system"`
	Name   string `json:"name"`
	Error  string `json:"error"`
}

// Report is the consolidated general-report view across all systems.
type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Systems     []SystemSummary `json:"systems"`
	Failures    []SystemFailure `json:"failures"`
}

// Builder runs the aggregation pipeline against a data source. It holds no
// mutable state; every build is an independent computation.
type Builder struct {
	source           source.DataSource
	logger           *slog.Logger
	horizonDays      int
	reportWindowDays int
	detailWindowDays int
}

// NewBuilder creates a report builder with the configured windows.
func NewBuilder(src source.DataSource, logger *slog.Logger, cfg *config.Config) *Builder {
	return &Builder{
		source:           src,
		logger:           logger,
		horizonDays:      cfg.ForecastHorizonDays,
		reportWindowDays: cfg.ReportWindowDays,
		detailWindowDays: cfg.DetailWindowDays,
	}
}

// BuildSystemSummary runs the detail-page pipeline (detail window) for one
// system.
func (b *Builder) BuildSystemSummary(ctx context.Context, key string) (*SystemSummary, error) {
	sys, ok := systems.ByKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", key)
	}
	return b.buildSummary(ctx, sys, b.detailWindowDays)
}

// BuildReport runs the report pipeline (report window) for every registered
// system concurrently. Individual failures degrade that system to a failure
// entry instead of failing the whole report.
func (b *Builder) BuildReport(ctx context.Context) *Report {
	all := systems.All()

	tasks := make([]async.Task, len(all))
	for i, sys := range all {
		sys := sys
		tasks[i] = async.Task{
			Name: sys.Key,
			Execute: func(ctx context.Context) (any, error) {
				return b.buildSummary(ctx, sys, b.reportWindowDays)
			},
		}
	}

	pool := async.NewPool(len(tasks))
	results := pool.Execute(ctx, tasks)

	rep := &Report{GeneratedAt: time.Now().UTC()}
	for _, sys := range all {
		result, ok := results[sys.Key]
		if !ok || result.Err != nil {
			errMsg := "build cancelled"
			if result.Err != nil {
				errMsg = result.Err.Error()
			} else if ctx.Err() != nil {
				errMsg = ctx.Err().Error()
			}
			b.logger.Error("System pipeline failed",
				slog.String("system", sys.Key), slog.String("error", errMsg))
			rep.Failures = append(rep.Failures, SystemFailure{
				System: sys.Key,
				Name:   sys.Name,
				Error:  errMsg,
			})
			continue
		}
		rep.Systems = append(rep.Systems, *result.Data.(*SystemSummary))
	}

	return rep
}

// BuildDetailSummaries runs the detail pipeline for every system
// concurrently, returning summaries and failures keyed by system.
func (b *Builder) BuildDetailSummaries(ctx context.Context) (map[string]*SystemSummary, map[string]error) {
	all := systems.All()

	tasks := make([]async.Task, len(all))
	for i, sys := range all {
		sys := sys
		tasks[i] = async.Task{
			Name: sys.Key,
			Execute: func(ctx context.Context) (any, error) {
				return b.buildSummary(ctx, sys, b.detailWindowDays)
			},
		}
	}

	pool := async.NewPool(len(tasks))
	results := pool.Execute(ctx, tasks)

	summaries := make(map[string]*SystemSummary)
	failures := make(map[string]error)
	for _, sys := range all {
		result, ok := results[sys.Key]
		switch {
		case !ok:
			if err := ctx.Err(); err != nil {
				failures[sys.Key] = err
			} else {
				failures[sys.Key] = errors.New("build cancelled")
			}
		case result.Err != nil:
			failures[sys.Key] = result.Err
		default:
			summaries[sys.Key] = result.Data.(*SystemSummary)
		}
	}
	return summaries, failures
}

// buildSummary is the stage 1-5 pipeline for one system: every step is a
// pure transform over the previous step's output.
func (b *Builder) buildSummary(ctx context.Context, sys systems.System, windowDays int) (*SystemSummary, error) {
	raws, err := b.source.FetchDetailedData(ctx, sys.Key)
	if err != nil {
		return nil, fmt.Errorf("fetching %s records: %w", sys.Key, err)
	}

	normalized := records.NormalizeAll(sys.Schema, raws)

	rows := analytics.AggregateDaily(normalized, sys.PolicyTable())
	analytics.SortByDate(rows)
	rows = analytics.CapLatest(rows, windowDays)

	series := analytics.MetricSeries(rows, sys.PrimaryMetric)
	stats := analytics.Analyze(series)
	prediction := analytics.Forecast(series, b.horizonDays)

	money := sys.IsMoneyMetric(sys.PrimaryMetric)

	return &SystemSummary{
		System:         sys.Key,
		Name:           sys.Name,
		ChartSeries:    buildChartSeries(series, prediction),
		Analytics:      stats,
		Prediction:     prediction,
		Insights:       analytics.ComposeInsights(stats, prediction, money),
		SummaryMetrics: buildSummaryMetrics(sys, rows, stats),
		UpdatedLabel:   updatedLabel(normalized),
	}, nil
}

// buildChartSeries interleaves observed and forecast points into one ordered
// sequence for dual-series charting.
func buildChartSeries(observed []analytics.DailyPoint, prediction analytics.PredictionSummary) []ChartPoint {
	chart := make([]ChartPoint, 0, len(observed)+len(prediction.Future))
	for _, point := range observed {
		value := point.Value
		chart = append(chart, ChartPoint{Date: point.Date, Actual: &value})
	}
	for _, point := range prediction.Future {
		value := point.Value
		chart = append(chart, ChartPoint{Date: point.Date, Predicted: &value})
	}
	return chart
}

// buildSummaryMetrics renders one labeled display string per metric:
// counters show the window total, rate metrics the window mean, qualitative
// fields the latest day's value.
func buildSummaryMetrics(sys systems.System, rows []analytics.DailyRow, stats analytics.SeriesAnalytics) []SummaryMetric {
	out := make([]SummaryMetric, 0, len(sys.Metrics))
	for _, metric := range sys.Metrics {
		var value string
		switch metric.Aggregation.Kind {
		case analytics.Sum:
			if metric.Name == sys.PrimaryMetric {
				value = analytics.FormatValue(stats.Total, metric.Money)
			} else {
				series := analytics.MetricSeries(rows, metric.Name)
				value = analytics.FormatValue(analytics.Analyze(series).Total, metric.Money)
			}
		case analytics.Mean, analytics.WeightedMean:
			series := analytics.MetricSeries(rows, metric.Name)
			value = analytics.FormatValue(analytics.Analyze(series).Average, metric.Money)
		case analytics.LatestWins:
			value = latestLabel(rows, metric.Name)
		}
		out = append(out, SummaryMetric{Label: metric.Label, Value: value})
	}
	return out
}

func latestLabel(rows []analytics.DailyRow, name string) string {
	for i := len(rows) - 1; i >= 0; i-- {
		if label, ok := rows[i].Labels[name]; ok && label != "" {
			return label
		}
	}
	return records.SentinelNoRecord
}

// updatedLabel renders the freshest updated_at across the fetched records.
func updatedLabel(normalized []records.Normalized) string {
	var latest time.Time
	for _, rec := range normalized {
		if rec.UpdatedAt.After(latest) {
			latest = rec.UpdatedAt
		}
	}
	if latest.IsZero() {
		return records.SentinelNoRecord
	}
	return "Atualizado em " + latest.Format("02/01 15:04")
}
