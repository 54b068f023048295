// Package source provides access to the upstream KPI API that feeds the
// aggregation pipeline, plus the deterministic mock used when no upstream is
// configured or a landing-page fetch fails.
package source

import (
	"context"

	"panorama/internal/records"
)

// Kpis is the light-weight headline payload behind a landing dashboard card.
// Values may contain nils for metrics the upstream could not compute.
type Kpis struct {
	Values    []*float64 `json:"values"`
	UpdatedAt string     `json:"updated_at"`
}

// SeriesPoint is one point of a pre-aggregated sparkline series.
type SeriesPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Series is a pre-aggregated single-metric series for a landing card chart.
type Series struct {
	Points []SeriesPoint `json:"points"`
	Label  string        `json:"label"`
}

// DataSource is the upstream contract the pipeline consumes. Implementations
// must be safe for concurrent use; every call is bounded by the context.
type DataSource interface {
	// FetchDetailedData returns the raw per-day records of a system,
	// newest first, as delivered by the upstream.
	FetchDetailedData(ctx context.Context, system string) ([]records.Raw, error)
	// FetchKpis returns the headline values for a system's landing card.
	FetchKpis(ctx context.Context, system string) (Kpis, error)
	// FetchSeries returns the sparkline series for a system's landing card.
	FetchSeries(ctx context.Context, system string) (Series, error)
}
