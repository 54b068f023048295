package analytics

// SeriesAnalytics holds descriptive statistics over one ordered daily series.
// PreviousValue is nil when fewer than two points exist; downstream uses that
// to decide which insight to show, so nil and 0 are distinct states.
type SeriesAnalytics struct {
	Total         float64     `json:"total"`
	Average       float64     `json:"average"`
	LastValue     float64     `json:"last_value"`
	PreviousValue *float64    `json:"previous_value"`
	BestDay       *DailyPoint `json:"best_day"`
	WorstDay      *DailyPoint `json:"worst_day"`
	Last7Average  float64     `json:"last_7_average"`
}

// Analyze computes descriptive statistics for a series ordered ascending by
// date. Empty input yields a zero-valued result, never NaN.
func Analyze(series []DailyPoint) SeriesAnalytics {
	if len(series) == 0 {
		return SeriesAnalytics{}
	}

	var total float64
	best := series[0]
	worst := series[0]
	for _, point := range series {
		total += point.Value
		if point.Value > best.Value {
			best = point
		}
		if point.Value < worst.Value {
			worst = point
		}
	}

	result := SeriesAnalytics{
		Total:     total,
		Average:   total / float64(len(series)),
		LastValue: series[len(series)-1].Value,
		BestDay:   &best,
		WorstDay:  &worst,
	}

	if len(series) >= 2 {
		prev := series[len(series)-2].Value
		result.PreviousValue = &prev
	}

	window := 7
	if len(series) < window {
		window = len(series)
	}
	var trailing float64
	for _, point := range series[len(series)-window:] {
		trailing += point.Value
	}
	result.Last7Average = trailing / float64(window)

	return result
}
