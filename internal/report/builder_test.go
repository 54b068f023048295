package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panorama/internal/config"
	"panorama/internal/records"
	"panorama/internal/report"
	"panorama/internal/source"
	"panorama/internal/systems"
	"panorama/internal/testsupport"
)

// fixedSource serves the same raw records for every system.
type fixedSource struct {
	raws []records.Raw
}

func (f fixedSource) FetchDetailedData(context.Context, string) ([]records.Raw, error) {
	return f.raws, nil
}

func (f fixedSource) FetchKpis(context.Context, string) (source.Kpis, error) {
	return source.Kpis{}, nil
}

func (f fixedSource) FetchSeries(context.Context, string) (source.Series, error) {
	return source.Series{}, nil
}

type brokenSource struct{ err error }

func (b brokenSource) FetchDetailedData(context.Context, string) ([]records.Raw, error) {
	return nil, b.err
}

func (b brokenSource) FetchKpis(context.Context, string) (source.Kpis, error) {
	return source.Kpis{}, b.err
}

func (b brokenSource) FetchSeries(context.Context, string) (source.Series, error) {
	return source.Series{}, b.err
}

func testConfig() *config.Config {
	return &config.Config{
		ForecastHorizonDays: 3,
		ReportWindowDays:    14,
		DetailWindowDays:    30,
	}
}

func crmFixture() []records.Raw {
	// Newest first with a same-day duplicate and a locale-formatted
	// value, like a real upstream payload.
	return []records.Raw{
		{
			"ref_date":       "2024-02-02",
			"updated_at":     "2024-02-02T18:30:00Z",
			"new_leads":      5,
			"pipeline_value": "10.000,00",
			"top_vendor":     "Ana Souza",
		},
		{
			"ref_date":  "2024-02-01T09:00:00Z",
			"new_leads": 3,
		},
		{
			"ref_date":  "2024-02-01T15:00:00Z",
			"new_leads": "2,5",
		},
	}
}

func TestBuildSystemSummary(t *testing.T) {
	builder := report.NewBuilder(fixedSource{raws: crmFixture()}, testsupport.NewTestLogger(), testConfig())

	summary, err := builder.BuildSystemSummary(context.Background(), "crm")
	require.NoError(t, err)

	assert.Equal(t, "crm", summary.System)
	assert.Equal(t, "CRM", summary.Name)

	// Same-day records merged: 3 + 2,5 on the first day, 5 on the second.
	assert.InDelta(t, 10.5, summary.Analytics.Total, 0.0001)
	assert.InDelta(t, 5, summary.Analytics.LastValue, 0.0001)
	require.NotNil(t, summary.Analytics.PreviousValue)
	assert.InDelta(t, 5.5, *summary.Analytics.PreviousValue, 0.0001)
	require.NotNil(t, summary.Analytics.BestDay)
	assert.Equal(t, "2024-02-01", summary.Analytics.BestDay.Date)

	require.Len(t, summary.Prediction.Future, 3)
	assert.Equal(t, "2024-02-03", summary.Prediction.Future[0].Date)

	assert.NotEmpty(t, summary.Insights)
	assert.Equal(t, "Atualizado em 02/02 18:30", summary.UpdatedLabel)
}

func TestBuildSystemSummaryChartInterleavesForecast(t *testing.T) {
	builder := report.NewBuilder(fixedSource{raws: crmFixture()}, testsupport.NewTestLogger(), testConfig())

	summary, err := builder.BuildSystemSummary(context.Background(), "crm")
	require.NoError(t, err)

	require.Len(t, summary.ChartSeries, 5)
	for _, point := range summary.ChartSeries[:2] {
		assert.NotNil(t, point.Actual)
		assert.Nil(t, point.Predicted)
	}
	for _, point := range summary.ChartSeries[2:] {
		assert.Nil(t, point.Actual)
		assert.NotNil(t, point.Predicted)
	}
	assert.Equal(t, "2024-02-01", summary.ChartSeries[0].Date)
	assert.Equal(t, "2024-02-05", summary.ChartSeries[4].Date)
}

func TestBuildSystemSummaryMetrics(t *testing.T) {
	builder := report.NewBuilder(fixedSource{raws: crmFixture()}, testsupport.NewTestLogger(), testConfig())

	summary, err := builder.BuildSystemSummary(context.Background(), "crm")
	require.NoError(t, err)

	byLabel := make(map[string]string)
	for _, metric := range summary.SummaryMetrics {
		byLabel[metric.Label] = metric.Value
	}

	assert.Contains(t, byLabel["Valor em pipeline"], "R$")
	assert.Equal(t, "Ana Souza", byLabel["Vendedor destaque"])
	assert.NotEmpty(t, byLabel["Novos leads"])
}

func TestBuildSystemSummaryUnknownSystem(t *testing.T) {
	builder := report.NewBuilder(fixedSource{}, testsupport.NewTestLogger(), testConfig())

	_, err := builder.BuildSystemSummary(context.Background(), "erp")
	assert.Error(t, err)
}

func TestBuildSystemSummaryPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	builder := report.NewBuilder(brokenSource{err: fetchErr}, testsupport.NewTestLogger(), testConfig())

	_, err := builder.BuildSystemSummary(context.Background(), "crm")
	assert.ErrorIs(t, err, fetchErr)
}

func TestBuildReportCoversAllSystems(t *testing.T) {
	builder := report.NewBuilder(fixedSource{raws: crmFixture()}, testsupport.NewTestLogger(), testConfig())

	rep := builder.BuildReport(context.Background())

	assert.Empty(t, rep.Failures)
	require.Len(t, rep.Systems, len(systems.All()))
	for i, sys := range systems.All() {
		assert.Equal(t, sys.Key, rep.Systems[i].System, "display order must hold")
	}
	assert.False(t, rep.GeneratedAt.IsZero())
}

func TestBuildReportDegradesFailedSystems(t *testing.T) {
	builder := report.NewBuilder(brokenSource{err: errors.New("boom")}, testsupport.NewTestLogger(), testConfig())

	rep := builder.BuildReport(context.Background())

	assert.Empty(t, rep.Systems)
	require.Len(t, rep.Failures, len(systems.All()))
	for _, failure := range rep.Failures {
		assert.Contains(t, failure.Error, "boom")
		assert.NotEmpty(t, failure.Name)
	}
}

func TestBuildDetailSummaries(t *testing.T) {
	builder := report.NewBuilder(fixedSource{raws: crmFixture()}, testsupport.NewTestLogger(), testConfig())

	summaries, failures := builder.BuildDetailSummaries(context.Background())

	assert.Empty(t, failures)
	assert.Len(t, summaries, len(systems.All()))
	require.Contains(t, summaries, "finance")
	assert.Equal(t, "Financeiro", summaries["finance"].Name)
}

func TestBuildDetailSummariesFailures(t *testing.T) {
	fetchErr := errors.New("boom")
	builder := report.NewBuilder(brokenSource{err: fetchErr}, testsupport.NewTestLogger(), testConfig())

	summaries, failures := builder.BuildDetailSummaries(context.Background())

	assert.Empty(t, summaries)
	require.Len(t, failures, len(systems.All()))
	assert.ErrorIs(t, failures["crm"], fetchErr)
}
