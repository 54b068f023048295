package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"panorama/internal/records"
	"panorama/internal/systems"
)

// Mock is a deterministic pseudo-random data source. For a given system and
// calendar day it always produces the same records, so dashboards stay
// stable across refreshes and tests can assert on exact values. The payloads
// deliberately mix clean numbers, locale-formatted strings and nulls so the
// normalization boundary is exercised the same way a real upstream would.
type Mock struct {
	now func() time.Time
}

// NewMock creates a mock source on the system clock.
func NewMock() *Mock {
	return NewMockAt(time.Now)
}

// NewMockAt creates a mock source with an injected clock; intended for tests.
func NewMockAt(now func() time.Time) *Mock {
	return &Mock{now: now}
}

var _ DataSource = (*Mock)(nil)

const mockHistoryDays = 30

var mockCampaigns = []string{
	"Campanha Institucional",
	"Lançamento Primavera",
	"Remarketing Geral",
	"Captação de Leads",
}

var mockNames = []string{
	"Ana Souza",
	"Carlos Lima",
	"Fernanda Alves",
	"João Pereira",
	"Sem registro",
}

// fieldRanges bounds the generated value per known field; unknown fields
// fall back to 0..100.
var fieldRanges = map[string][2]float64{
	"spend":                {200, 2500},
	"impressions":          {5000, 80000},
	"clicks":               {80, 1200},
	"leads":                {3, 45},
	"cpl":                  {8, 90},
	"roas":                 {0.8, 6},
	"conversions":          {2, 40},
	"cpc":                  {0.5, 6},
	"new_leads":            {5, 60},
	"won_deals":            {0, 12},
	"lost_deals":           {0, 15},
	"pipeline_value":       {10000, 250000},
	"revenue":              {3000, 90000},
	"expenses":             {2000, 50000},
	"invoices_issued":      {2, 35},
	"tickets_opened":       {4, 70},
	"tickets_resolved":     {3, 65},
	"avg_response_minutes": {5, 120},
	"satisfaction_score":   {3.2, 5},
	"workflows_executed":   {50, 900},
	"tasks_completed":      {40, 800},
	"errors":               {0, 20},
	"messages_sent":        {100, 3000},
	"conversations":        {20, 400},
	"delivery_rate":        {88, 100},
	"read_rate":            {45, 95},
	"emails_sent":          {500, 15000},
	"open_rate":            {12, 48},
	"click_rate":           {1, 9},
	"unsubscribes":         {0, 40},
	"orders":               {5, 120},
	"avg_ticket":           {60, 450},
	"abandoned_carts":      {2, 60},
}

// FetchDetailedData generates mockHistoryDays of raw records for a system,
// newest first, like real upstreams deliver them.
func (m *Mock) FetchDetailedData(_ context.Context, system string) ([]records.Raw, error) {
	sys, ok := systems.ByKey(system)
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", system)
	}

	today := m.now().UTC()
	var raws []records.Raw
	for offset := 0; offset < mockHistoryDays; offset++ {
		day := today.AddDate(0, 0, -offset)
		raws = append(raws, m.recordsForDay(sys, day)...)
	}
	return raws, nil
}

// FetchKpis derives headline values from the generated records: 7-day total,
// 7-day average and last-day value of the primary metric.
func (m *Mock) FetchKpis(ctx context.Context, system string) (Kpis, error) {
	totals, err := m.primaryDailyTotals(ctx, system, 7)
	if err != nil {
		return Kpis{}, err
	}

	var total float64
	for _, v := range totals {
		total += v
	}
	average := 0.0
	if len(totals) > 0 {
		average = total / float64(len(totals))
	}
	last := 0.0
	if len(totals) > 0 {
		last = totals[len(totals)-1]
	}

	return Kpis{
		Values:    []*float64{&total, &average, &last},
		UpdatedAt: m.now().UTC().Format(time.RFC3339),
	}, nil
}

// FetchSeries derives a 14-day sparkline of the primary metric.
func (m *Mock) FetchSeries(ctx context.Context, system string) (Series, error) {
	sys, ok := systems.ByKey(system)
	if !ok {
		return Series{}, fmt.Errorf("unknown system: %s", system)
	}

	totals, err := m.primaryDailyTotals(ctx, system, 14)
	if err != nil {
		return Series{}, err
	}

	today := m.now().UTC()
	points := make([]SeriesPoint, len(totals))
	for i := range totals {
		day := today.AddDate(0, 0, -(len(totals) - 1 - i))
		points[i] = SeriesPoint{X: day.Format("2006-01-02"), Y: totals[i]}
	}

	metric, _ := sys.Metric(sys.PrimaryMetric)
	return Series{Points: points, Label: metric.Label}, nil
}

// primaryDailyTotals sums the primary metric per day over the last n days,
// oldest first.
func (m *Mock) primaryDailyTotals(_ context.Context, system string, n int) ([]float64, error) {
	sys, ok := systems.ByKey(system)
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", system)
	}

	today := m.now().UTC()
	totals := make([]float64, n)
	for i := 0; i < n; i++ {
		day := today.AddDate(0, 0, -(n - 1 - i))
		for _, raw := range m.recordsForDay(sys, day) {
			norm := records.Normalize(sys.Schema, raw)
			totals[i] += norm.Numbers[sys.PrimaryMetric]
		}
	}
	return totals, nil
}

func (m *Mock) recordsForDay(sys systems.System, day time.Time) []records.Raw {
	rng := dayRand(sys.Key, day)

	count := 1
	if strings.HasSuffix(sys.Key, "_ads") {
		// Ad platforms report one record per active campaign.
		count = 1 + rng.IntN(3)
	}

	raws := make([]records.Raw, count)
	for i := 0; i < count; i++ {
		raw := records.Raw{
			"ref_date":   day.Format("2006-01-02"),
			"updated_at": day.Format("2006-01-02") + "T18:30:00Z",
		}
		for _, field := range sys.Schema.Fields {
			switch field.Kind {
			case records.NumberField:
				raw[field.Name] = renderMockNumber(rng, mockValue(rng, field.Name))
			case records.StringField:
				raw[field.Name] = mockString(rng, field.Name, i)
			}
		}
		raws[i] = raw
	}
	return raws
}

func mockValue(rng *rand.Rand, field string) float64 {
	bounds, ok := fieldRanges[field]
	if !ok {
		bounds = [2]float64{0, 100}
	}
	value := bounds[0] + rng.Float64()*(bounds[1]-bounds[0])
	return math.Round(value*100) / 100
}

// renderMockNumber picks a representation: plain number, locale string with
// comma decimals, or null. The spread mirrors real upstream payloads.
func renderMockNumber(rng *rand.Rand, value float64) any {
	switch rng.IntN(6) {
	case 0:
		return localeNumberString(value)
	case 1:
		return nil
	default:
		return value
	}
}

func localeNumberString(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	s = strings.Replace(s, ".", ",", 1)
	// Insert dot grouping for thousands, "1234,56" -> "1.234,56".
	comma := strings.Index(s, ",")
	for i := comma - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}
	return s
}

func mockString(rng *rand.Rand, field string, index int) any {
	if rng.IntN(8) == 0 {
		return nil
	}
	switch field {
	case "campaign_name":
		return mockCampaigns[(rng.IntN(len(mockCampaigns))+index)%len(mockCampaigns)]
	default:
		return mockNames[rng.IntN(len(mockNames))]
	}
}

// dayRand seeds a generator from the system key and calendar day so output
// is stable regardless of call order.
func dayRand(system string, day time.Time) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(system))
	h.Write([]byte(day.Format("2006-01-02")))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
