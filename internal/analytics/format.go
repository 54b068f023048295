package analytics

import (
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is rendered when a value has no finite source.
const Placeholder = "—"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatMoney renders a currency value, e.g. 1234.56 -> "R$ 1.234,56".
func FormatMoney(value float64) string {
	if !isFinite(value) {
		return Placeholder
	}
	return printer.Sprint(currency.Symbol(currency.BRL.Amount(value)))
}

// FormatCount renders a plain quantity with locale grouping. Whole numbers
// drop the fraction, everything else keeps two decimals.
func FormatCount(value float64) string {
	if !isFinite(value) {
		return Placeholder
	}
	if value == math.Trunc(value) {
		return printer.Sprint(number.Decimal(int64(value)))
	}
	return printer.Sprint(number.Decimal(value,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatValue renders a value as money or as a plain count.
func FormatValue(value float64, money bool) string {
	if money {
		return FormatMoney(value)
	}
	return FormatCount(value)
}

// FormatPercentSigned renders a percentage with an explicit sign and one
// decimal, e.g. "+12,3%".
func FormatPercentSigned(value float64) string {
	if !isFinite(value) {
		return Placeholder
	}
	return printer.Sprintf("%+.1f%%", value)
}

// FormatDayShort renders a day key as dd/mm, or "" for an unusable date.
func FormatDayShort(date string) string {
	t, err := time.Parse(dayKeyLayout, date)
	if err != nil {
		return ""
	}
	return t.Format("02/01")
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
