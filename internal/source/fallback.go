package source

import (
	"context"
	"log/slog"

	"panorama/internal/records"
)

// FallbackSource wraps a primary source with the mock. Landing-card calls
// (KPIs, series) substitute mock data on any failure so the landing
// dashboard never shows an error. Detailed records deliberately do NOT fall
// back: detail and report views promise real historical data, and synthetic
// numbers there would mislead, so those errors propagate to the caller.
type FallbackSource struct {
	primary DataSource
	mock    *Mock
	logger  *slog.Logger
}

// NewFallbackSource wraps primary with mock substitution for landing calls.
func NewFallbackSource(primary DataSource, mock *Mock, logger *slog.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, mock: mock, logger: logger}
}

var _ DataSource = (*FallbackSource)(nil)

// FetchDetailedData propagates primary errors without substitution.
func (f *FallbackSource) FetchDetailedData(ctx context.Context, system string) ([]records.Raw, error) {
	return f.primary.FetchDetailedData(ctx, system)
}

// FetchKpis falls back to mock data on primary failure.
func (f *FallbackSource) FetchKpis(ctx context.Context, system string) (Kpis, error) {
	kpis, err := f.primary.FetchKpis(ctx, system)
	if err != nil {
		f.logger.Warn("KPI fetch failed, substituting mock data",
			slog.String("system", system), slog.Any("error", err))
		return f.mock.FetchKpis(ctx, system)
	}
	return kpis, nil
}

// FetchSeries falls back to mock data on primary failure.
func (f *FallbackSource) FetchSeries(ctx context.Context, system string) (Series, error) {
	series, err := f.primary.FetchSeries(ctx, system)
	if err != nil {
		f.logger.Warn("Series fetch failed, substituting mock data",
			slog.String("system", system), slog.Any("error", err))
		return f.mock.FetchSeries(ctx, system)
	}
	return series, nil
}
