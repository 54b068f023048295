package analytics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"panorama/internal/analytics"
)

func TestFormatMoney(t *testing.T) {
	got := analytics.FormatMoney(1500)
	assert.Contains(t, got, "R$")
	assert.Equal(t, analytics.Placeholder, analytics.FormatMoney(math.NaN()))
	assert.Equal(t, analytics.Placeholder, analytics.FormatMoney(math.Inf(1)))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "42", analytics.FormatCount(42))
	assert.NotContains(t, analytics.FormatCount(42), ",", "whole numbers drop the fraction")
	assert.Contains(t, analytics.FormatCount(3.5), ",", "fractions use the comma separator")
	assert.Equal(t, analytics.Placeholder, analytics.FormatCount(math.Inf(-1)))
}

func TestFormatPercentSigned(t *testing.T) {
	positive := analytics.FormatPercentSigned(12.34)
	assert.True(t, len(positive) > 0 && positive[0] == '+')
	assert.Contains(t, positive, "%")

	negative := analytics.FormatPercentSigned(-5)
	assert.True(t, len(negative) > 0 && negative[0] == '-')

	assert.Equal(t, analytics.Placeholder, analytics.FormatPercentSigned(math.NaN()))
}

func TestFormatDayShort(t *testing.T) {
	assert.Equal(t, "17/03", analytics.FormatDayShort("2024-03-17"))
	assert.Empty(t, analytics.FormatDayShort("17/03/2024"))
	assert.Empty(t, analytics.FormatDayShort(""))
}
