package locate

import (
	"regexp"
	"strings"
)

// RowCandidate holds the raw tokens of one table row. Empty strings mean the
// row had no token for that column.
type RowCandidate struct {
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

var (
	reNumericToken = regexp.MustCompile(`^[-+]?[€$£₹¥]?\d[\d.,]*-?[€$£₹¥]?$`)
	reFullDate     = regexp.MustCompile(`^(?:\d{1,2}[./-]\d{1,2}[./-]\d{4}|\d{4}[./-]\d{1,2}[./-]\d{1,2})$`)
	reRowSplit     = strings.NewReplacer("|", " ", "@", " @ ", "=", " ", "\t", " ", "×", " x ")
	reMultiplier   = regexp.MustCompile(`(?i)^(?:x|\*|@)$`)
	reAttachedX    = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)x$`)
	reMoney        = regexp.MustCompile(`\d[.,]\d{2}-?[€$£₹¥]?$`)
)

// Header words grouped by column; a header names at least two columns.
var headerColumns = []*regexp.Regexp{
	label(`\b(?:description|item|product|service|article|bezeichnung|beschreibung|leistung|artikel)s?\b`),
	label(`\b(?:qty|quantity|menge|anzahl|units|hours)\b`),
	label(`\b(?:unit\s+price|price|rate|preis|einzelpreis)\b`),
	label(`\b(?:amount|total|line\s+total|betrag|gesamt)\b`),
}

// parsedRow is a row candidate plus what parseRow saw while reading it.
type parsedRow struct {
	RowCandidate
	multiplier bool
}

// itemLike reports whether the row carries a money amount or a quantity
// marker, which street numbers and postcodes never do.
func (r parsedRow) itemLike() bool {
	return r.multiplier || reMoney.MatchString(r.LineTotal) || reMoney.MatchString(r.UnitPrice)
}

// isItemRow reports whether line reads as a line item outside of a table.
func isItemRow(line string) bool {
	row, ok := parseRow(line)
	return ok && row.itemLike()
}

func isHeader(line string) bool {
	if strings.ContainsAny(line, "0123456789") {
		return false
	}

	n := 0
	for _, re := range headerColumns {
		if re.MatchString(line) {
			n++
		}
	}

	return n >= 2
}

// locateLineItems scans the table that follows a header when there is one,
// otherwise every line that is neither labelled nor part of a party block.
func locateLineItems(lines []string, excluded map[int]bool) []RowCandidate {
	start, end := 0, len(lines)
	bounded := false

	for i, line := range lines {
		if isHeader(line) {
			start, bounded = i+1, true
			break
		}
	}

	if bounded {
		for i := start; i < len(lines); i++ {
			if _, row := parseRow(lines[i]); !row && matchesAny(lines[i], summaryStrategies...) {
				end = i
				break
			}
		}
	}

	var rows []RowCandidate

	for i := start; i < end; i++ {
		line := lines[i]
		if line == "" || excluded[i] {
			continue
		}

		if !bounded && (matchesAny(line, labelStrategies...) || reFieldLine.MatchString(line) || isAnchor(line)) {
			continue
		}

		row, ok := parseRow(line)
		if !ok {
			continue
		}

		// Outside a table only priced or multiplied rows count.
		if !bounded && !row.itemLike() {
			continue
		}

		rows = append(rows, row.RowCandidate)
	}

	return rows
}

// parseRow splits a row into a description run and its numeric tokens.
// Numbers before the description are position numbers and are dropped; words
// after it (units, currency codes) are ignored.
func parseRow(line string) (parsedRow, bool) {
	var (
		desc       []string
		nums       []string
		multiplier bool
	)

	for _, tok := range strings.Fields(reRowSplit.Replace(line)) {
		if reMultiplier.MatchString(tok) {
			multiplier = true
			continue
		}

		if m := reAttachedX.FindStringSubmatch(tok); m != nil {
			multiplier = true
			tok = m[1]
		}

		if reNumericToken.MatchString(tok) && !reFullDate.MatchString(tok) {
			if len(desc) > 0 {
				nums = append(nums, tok)
			}

			continue
		}

		if len(nums) == 0 {
			desc = append(desc, tok)
		}
	}

	if len(desc) == 0 || len(nums) < 2 {
		return parsedRow{}, false
	}

	row := parsedRow{
		RowCandidate: RowCandidate{Description: strings.Join(desc, " ")},
		multiplier:   multiplier,
	}

	switch {
	case len(nums) >= 3:
		row.Quantity, row.UnitPrice, row.LineTotal = nums[0], nums[1], nums[len(nums)-1]
	case multiplier:
		row.Quantity, row.UnitPrice = nums[0], nums[1]
	case strings.ContainsAny(nums[0], ".,"):
		row.UnitPrice, row.LineTotal = nums[0], nums[1]
	default:
		row.Quantity, row.LineTotal = nums[0], nums[1]
	}

	return row, true
}
