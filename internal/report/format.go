package report

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// Grouped formats n with thousands separators.
func Grouped(n int64) string {
	return printer.Sprintf("%d", n)
}

// JapaneseUnits abbreviates large values with 億 and 万.
func JapaneseUnits(x float64) string {
	switch {
	case x >= 1e8:
		return strconv.FormatFloat(x/1e8, 'f', 1, 64) + "億"
	case x >= 1e4:
		return strconv.FormatFloat(x/1e4, 'f', 0, 64) + "万"
	default:
		return strconv.FormatFloat(x, 'f', 0, 64)
	}
}

// Percent formats a percentage with two decimals.
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + "%"
}
