package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount resolves a raw numeric token into a signed decimal.
// Format examples: "1.234,56" -> 1234.56, "1,234.56" -> 1234.56, "€ -588,74" -> -588.74,
// "1.234.567" -> 1234567, "12,5" -> 12.5.
//
// Separator rules:
//  1. Everything except digits, ',', '.' and '-' is dropped.
//  2. With both ',' and '.', the last separator is the decimal point when 1-3 digits
//     follow it; otherwise every separator is a thousands separator.
//  3. With one kind repeated, it must group by three and is a thousands separator.
//     A single occurrence is the decimal point.
//  4. A sign is accepted only in first or last position.
//
// The second return value is false when the token cannot be read as a number.
func ParseAmount(token string) (decimal.Decimal, bool) {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}

		return -1
	}, token)

	negative, unsigned, ok := splitSign(clean)
	if !ok {
		return decimal.Zero, false
	}

	number, ok := resolveSeparators(unsigned)
	if !ok {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, false
	}

	if negative {
		d = d.Neg()
	}

	return d, true
}

// splitSign removes a single leading or trailing minus.
func splitSign(s string) (bool, string, bool) {
	switch strings.Count(s, "-") {
	case 0:
		return false, s, true
	case 1:
	default:
		return false, "", false
	}

	switch {
	case strings.HasPrefix(s, "-"):
		return true, s[1:], true
	case strings.HasSuffix(s, "-"):
		return true, s[:len(s)-1], true
	}

	return false, "", false
}

// resolveSeparators turns digits mixed with ',' and '.' into a plain decimal string.
func resolveSeparators(s string) (string, bool) {
	if !strings.ContainsAny(s, "0123456789") {
		return "", false
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		return resolveMixed(s, max(lastComma, lastDot))
	case lastComma >= 0:
		return resolveSingleKind(s, ",")
	case lastDot >= 0:
		return resolveSingleKind(s, ".")
	}

	return s, true
}

func resolveMixed(s string, decIdx int) (string, bool) {
	decSep := s[decIdx : decIdx+1]
	if strings.Count(s, decSep) > 1 {
		return "", false
	}

	intPart := stripSeparators(s[:decIdx])
	frac := s[decIdx+1:]

	if len(frac) < 1 || len(frac) > 3 {
		return joinNumber(intPart+frac, ""), true
	}

	return joinNumber(intPart, frac), true
}

func resolveSingleKind(s, sep string) (string, bool) {
	parts := strings.Split(s, sep)
	if len(parts) == 2 {
		return joinNumber(parts[0], parts[1]), true
	}

	// Repeated separator: only valid as thousands grouping.
	if len(parts[0]) < 1 || len(parts[0]) > 3 {
		return "", false
	}

	for _, group := range parts[1:] {
		if len(group) != 3 {
			return "", false
		}
	}

	return strings.Join(parts, ""), true
}

func stripSeparators(s string) string {
	return strings.NewReplacer(",", "", ".", "").Replace(s)
}

func joinNumber(intPart, frac string) string {
	if intPart == "" {
		intPart = "0"
	}

	if frac == "" {
		return intPart
	}

	return intPart + "." + frac
}
