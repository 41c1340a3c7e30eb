package locate

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reIdentifier = regexp.MustCompile(`^[\s:#.\-]*([A-Za-z0-9][A-Za-z0-9\-/_.]*[A-Za-z0-9]|[0-9])`)
	reDateToken  = regexp.MustCompile(`(?i)\d{1,2}[./-]\d{1,2}[./-]\d{4}|\d{4}[./-]\d{1,2}[./-]\d{1,2}|\d{1,2}\.?\s+[a-z]{3,9}\.?\s+\d{4}|[a-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}`)
	reAmount     = regexp.MustCompile(`(-)?(?:[€$£₹¥]\s*)?(-)?(\d[\d.,]*\d|\d)(-)?(\s*%)?`)
	rePercent    = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{1,3})?)\s*%`)
	reCodeValue  = regexp.MustCompile(`^[\s:]*([A-Za-z]{3})\b`)
	reVATID      = regexp.MustCompile(`^(?:[A-Z]{2}[0-9A-Z]{8,12}|\d{9,12})$`)
)

// identifierValue reads an invoice or reference number. It must contain a
// digit so that words following a label ("Invoice Date") are not taken.
func identifierValue(rest string) (string, bool) {
	m := reIdentifier.FindStringSubmatch(rest)
	if m == nil || !strings.ContainsAny(m[1], "0123456789") {
		return "", false
	}

	return m[1], true
}

func dateValue(rest string) (string, bool) {
	m := reDateToken.FindString(rest)
	return m, m != ""
}

// amountValue returns the last number after the label that is not a percentage.
func amountValue(rest string) (string, bool) {
	rest = reDateToken.ReplaceAllString(rest, " ")

	matches := reAmount.FindAllStringSubmatch(rest, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m[5] != "" {
			continue
		}

		sign := ""
		if m[1] != "" || m[2] != "" || m[4] != "" {
			sign = "-"
		}

		return sign + m[3], true
	}

	return "", false
}

func percentValue(rest string) (string, bool) {
	m := rePercent.FindStringSubmatch(rest)
	if m == nil {
		return "", false
	}

	return m[1], true
}

func currencyCodeValue(rest string) (string, bool) {
	m := reCodeValue.FindStringSubmatch(rest)
	if m == nil {
		return "", false
	}

	return strings.ToUpper(m[1]), true
}

// taxIDValue joins the tokens after a tax label until they form the longest
// VAT-like identifier ("DE 123 456 789" -> "DE123456789").
func taxIDValue(rest string) (string, bool) {
	rest = strings.TrimLeft(rest, " :.#")

	var (
		acc  string
		best string
	)

	for i, tok := range strings.Fields(rest) {
		tok = strings.Trim(strings.ToUpper(tok), ",;")
		if i > 0 && strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			break
		}

		acc += strings.ReplaceAll(tok, "/", "")
		if len(acc) > 14 {
			break
		}

		if reVATID.MatchString(acc) {
			best = acc
		}
	}

	return best, best != ""
}
