// Package currency renders peso amounts for display. Rounding happens here
// and nowhere else; computation layers keep full float precision.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var chileanPrinter = message.NewPrinter(language.MustParse("es-CL"))

// Format renders an amount as Chilean pesos with thousand separators and no
// decimals, e.g. "CLP 5.000".
func Format(amount float64) string {
	return chileanPrinter.Sprintf("CLP %v", number.Decimal(amount,
		number.MaxFractionDigits(0),
		number.MinFractionDigits(0),
	))
}

// FormatPercent renders a discount percentage with at most one decimal and
// the es-CL decimal comma, e.g. "16,7%" or "15%".
func FormatPercent(pct float64) string {
	return chileanPrinter.Sprintf("%v%%", number.Decimal(pct,
		number.MaxFractionDigits(1),
		number.MinFractionDigits(0),
	))
}
