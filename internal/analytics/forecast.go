package analytics

import (
	"time"
)

const dayKeyLayout = "2006-01-02"

// PredictionSummary is a short-horizon projection of one daily series.
// Future values are floored at zero; TrendPerDay keeps the raw slope so the
// direction of a declining metric is not lost to the floor.
type PredictionSummary struct {
	Future      []DailyPoint `json:"future"`
	Total       float64      `json:"total"`
	Average     float64      `json:"average"`
	TrendPerDay float64      `json:"trend_per_day"`
}

// Forecast fits an ordinary least squares line over (index, value) pairs and
// projects horizonDays consecutive calendar days past the last observation.
// An empty series yields an empty summary; a degenerate fit (n <= 1 or a
// zero denominator) projects a flat line at the intercept.
func Forecast(series []DailyPoint, horizonDays int) PredictionSummary {
	if len(series) == 0 || horizonDays <= 0 {
		return PredictionSummary{Future: []DailyPoint{}}
	}

	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, point := range series {
		x := float64(i)
		sumX += x
		sumY += point.Value
		sumXY += x * point.Value
		sumXX += x * x
	}

	var slope float64
	if denominator := n*sumXX - sumX*sumX; denominator != 0 {
		slope = (n*sumXY - sumX*sumY) / denominator
	}
	intercept := (sumY - slope*sumX) / n

	lastDate, err := time.Parse(dayKeyLayout, series[len(series)-1].Date)
	if err != nil {
		// Day keys come from the normalization boundary and are always
		// parseable; an unusable date still gets a value-only projection.
		lastDate = time.Time{}
	}

	future := make([]DailyPoint, horizonDays)
	var total float64
	for i := 0; i < horizonDays; i++ {
		x := float64(len(series) + i)
		value := slope*x + intercept
		if value < 0 {
			value = 0
		}
		total += value

		date := ""
		if !lastDate.IsZero() {
			date = lastDate.AddDate(0, 0, i+1).Format(dayKeyLayout)
		}
		future[i] = DailyPoint{Date: date, Value: value}
	}

	return PredictionSummary{
		Future:      future,
		Total:       total,
		Average:     total / float64(horizonDays),
		TrendPerDay: slope,
	}
}
