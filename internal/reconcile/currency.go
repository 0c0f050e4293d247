package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseCurrency parses a German-format currency string into a decimal.
//
// It strips the euro sign and whitespace, then disambiguates separators:
// with both "." and "," present, "." groups thousands and "," is the decimal
// mark. A lone "," is the decimal mark. A lone "." is the decimal mark only
// when exactly two digits follow it, otherwise it groups thousands
// ("1.200" is twelve hundred, "250.00" is two hundred fifty).
//
// Unparseable or empty input yields zero. ParseCurrency never fails.
func ParseCurrency(raw string) decimal.Decimal {
	s := strings.ReplaceAll(raw, "€", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return decimal.Zero
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	case hasDot:
		if !isDecimalDot(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return value
}

// isDecimalDot reports whether the single dot of s is a decimal mark, which
// is the case only for exactly two trailing digits.
func isDecimalDot(s string) bool {
	if strings.Count(s, ".") != 1 {
		return false
	}

	return len(s)-strings.Index(s, ".")-1 == 2
}

var german = message.NewPrinter(language.German)

// FormatAmount renders a decimal in German notation with two decimal
// places, e.g. "1.234,56".
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return german.Sprintf("%v", number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

const shortfallPrefix = "Das verfügbare Monatseinkommen unterschreitet das gesetzliche Mindesteinkommen um "

// ShortfallMessage is the user-facing message for an income below the
// statutory minimum. It is informational, the application remains
// submittable.
func ShortfallMessage(deficit decimal.Decimal) string {
	return shortfallPrefix + FormatAmount(deficit) + " €."
}

// IsShortfallMessage reports whether an error string is a minimum-income
// shortfall message. The checklist recompute replaces it after edits.
func IsShortfallMessage(s string) bool {
	return strings.HasPrefix(s, shortfallPrefix)
}
