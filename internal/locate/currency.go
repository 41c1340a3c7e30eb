package locate

import (
	"regexp"
	"strings"

	"golang.org/x/text/currency"
)

var reCodeNearAmount = regexp.MustCompile(`\b([A-Z]{3})\s*-?[€$£₹¥]?\d|\d\s*([A-Z]{3})\b`)

// currencySymbols is ordered so that prefixed dollar forms win over "$".
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"US$", "USD"},
	{"AU$", "AUD"},
	{"A$", "AUD"},
	{"CA$", "CAD"},
	{"C$", "CAD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"₹", "INR"},
	{"¥", "JPY"},
	{"$", "USD"},
}

// locateCurrency tries, in order: a "Currency:" label, an ISO 4217 code next
// to a number, and a known symbol.
func locateCurrency(lines []string) string {
	if code := first(lines, currencyLabelStrategies); code != "" {
		return code
	}

	for _, line := range lines {
		for _, m := range reCodeNearAmount.FindAllStringSubmatch(line, -1) {
			code := m[1] + m[2]
			if _, err := currency.ParseISO(code); err == nil {
				return code
			}
		}
	}

	for _, s := range currencySymbols {
		for _, line := range lines {
			if strings.Contains(line, s.symbol) {
				return s.code
			}
		}
	}

	return ""
}
