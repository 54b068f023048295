package analytics

import "fmt"

// Insight is one pre-formatted label/value pair shown under a chart.
type Insight struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Insight labels. The variation and period-average insights are mutually
// exclusive: variation needs a non-null, non-zero previous value, otherwise
// the period average is shown instead.
const (
	InsightBestDay       = "Melhor dia"
	InsightWorstDay      = "Pior dia"
	InsightVariation     = "Variação vs dia anterior"
	InsightPeriodAverage = "Média dos últimos 14 dias"
)

// ComposeInsights builds the ordered insight list for one metric. The money
// flag selects currency formatting for values derived from the series.
func ComposeInsights(stats SeriesAnalytics, prediction PredictionSummary, money bool) []Insight {
	var insights []Insight

	if stats.BestDay != nil {
		insights = append(insights, Insight{
			Label: InsightBestDay,
			Value: formatDayValue(*stats.BestDay, money),
		})
	}
	if stats.WorstDay != nil {
		insights = append(insights, Insight{
			Label: InsightWorstDay,
			Value: formatDayValue(*stats.WorstDay, money),
		})
	}

	// Variation from a zero base is meaningless, so both the null and the
	// zero previous value fall back to the period average.
	if stats.PreviousValue != nil && *stats.PreviousValue != 0 {
		variation := (stats.LastValue - *stats.PreviousValue) / *stats.PreviousValue * 100
		insights = append(insights, Insight{
			Label: InsightVariation,
			Value: FormatPercentSigned(variation),
		})
	} else {
		insights = append(insights, Insight{
			Label: InsightPeriodAverage,
			Value: FormatValue(stats.Average, money),
		})
	}

	if stats.Last7Average > 0 && len(prediction.Future) > 0 {
		trend := (prediction.Average - stats.Last7Average) / stats.Last7Average * 100
		insights = append(insights, Insight{
			Label: fmt.Sprintf("Tendência próximos %d dias", len(prediction.Future)),
			Value: FormatPercentSigned(trend),
		})
	}

	return insights
}

func formatDayValue(point DailyPoint, money bool) string {
	value := FormatValue(point.Value, money)
	if day := FormatDayShort(point.Date); day != "" {
		return fmt.Sprintf("%s em %s", value, day)
	}
	return value
}
