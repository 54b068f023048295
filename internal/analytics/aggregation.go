// Package analytics turns normalized business records into per-day series,
// descriptive statistics, short-horizon forecasts and display insights.
//
// The package is organized into focused modules:
//   - aggregation.go: policy-driven daily grouping of normalized records
//   - series.go: descriptive statistics over an ordered daily series
//   - forecast.go: least-squares projection of the next days
//   - insights.go: ordered label/value insights for the dashboard
//   - format.go: locale display formatting for money, counts and percents
package analytics

import (
	"sort"

	"panorama/internal/records"
)

// DailyPoint is one (calendar day, value) observation of a single metric.
type DailyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DailyRow holds every aggregated metric of one calendar day. Values carries
// the numeric metrics, Labels the latest-wins qualitative fields (top client,
// top vendor).
type DailyRow struct {
	Date   string
	Values map[string]float64
	Labels map[string]string
}

// AggregationKind selects how records sharing a day key combine.
type AggregationKind int

const (
	// Sum adds counter fields (clicks, leads, tickets) across the day.
	Sum AggregationKind = iota
	// Mean averages rate fields (delivery rate, response time) unweighted.
	Mean
	// WeightedMean averages scaled by a weight field, e.g. ROAS by spend.
	WeightedMean
	// LatestWins carries the field from the most recently updated record.
	LatestWins
)

// Policy describes the aggregation strategy of one metric. WeightField is
// only read for WeightedMean.
type Policy struct {
	Kind        AggregationKind
	WeightField string
}

type dayAccumulator struct {
	date    string
	sums    map[string]float64
	weights map[string]float64
	counts  map[string]int
	latest  records.Normalized
}

// AggregateDaily groups normalized records by calendar day and combines each
// metric according to its policy. Records without a usable day key are
// skipped. Days are appended in first-seen order; call SortByDate before
// handing the result to Analyze or a chart.
func AggregateDaily(recs []records.Normalized, policies map[string]Policy) []DailyRow {
	var order []string
	byDay := make(map[string]*dayAccumulator)

	for _, rec := range recs {
		if rec.Date == "" {
			continue
		}
		acc, ok := byDay[rec.Date]
		if !ok {
			acc = &dayAccumulator{
				date:    rec.Date,
				sums:    make(map[string]float64),
				weights: make(map[string]float64),
				counts:  make(map[string]int),
				latest:  rec,
			}
			byDay[rec.Date] = acc
			order = append(order, rec.Date)
		}

		for name, policy := range policies {
			switch policy.Kind {
			case Sum, Mean:
				acc.sums[name] += rec.Numbers[name]
				acc.counts[name]++
			case WeightedMean:
				weight := rec.Numbers[policy.WeightField]
				acc.sums[name] += rec.Numbers[name] * weight
				acc.weights[name] += weight
			}
		}

		if !rec.UpdatedAt.Before(acc.latest.UpdatedAt) {
			acc.latest = rec
		}
	}

	rows := make([]DailyRow, 0, len(order))
	for _, date := range order {
		rows = append(rows, byDay[date].finalize(policies))
	}
	return rows
}

func (acc *dayAccumulator) finalize(policies map[string]Policy) DailyRow {
	row := DailyRow{
		Date:   acc.date,
		Values: make(map[string]float64, len(policies)),
		Labels: make(map[string]string),
	}

	for name, policy := range policies {
		switch policy.Kind {
		case Sum:
			row.Values[name] = acc.sums[name]
		case Mean:
			if n := acc.counts[name]; n > 0 {
				row.Values[name] = acc.sums[name] / float64(n)
			}
		case WeightedMean:
			if w := acc.weights[name]; w > 0 {
				row.Values[name] = acc.sums[name] / w
			}
		case LatestWins:
			if s, ok := acc.latest.Strings[name]; ok {
				row.Labels[name] = s
			} else {
				row.Values[name] = acc.latest.Numbers[name]
			}
		}
	}

	return row
}

// SortByDate orders rows ascending by calendar date. Day keys are
// YYYY-MM-DD, so lexicographic order is calendar order. Sources commonly
// deliver newest-first, which is why first-seen order cannot be trusted.
func SortByDate(rows []DailyRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
}

// CapLatest keeps the n chronologically latest rows. It must run after
// SortByDate, never before, so the most recent days are the ones retained.
func CapLatest(rows []DailyRow, n int) []DailyRow {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// MetricSeries projects one metric out of the aggregated rows.
func MetricSeries(rows []DailyRow, metric string) []DailyPoint {
	series := make([]DailyPoint, len(rows))
	for i, row := range rows {
		series[i] = DailyPoint{Date: row.Date, Value: row.Values[metric]}
	}
	return series
}
