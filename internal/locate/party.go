package locate

import (
	"regexp"
	"strings"
	"unicode"
)

const maxBlockLines = 6

// Party anchors, most specific first.
var (
	sellerAnchors = anchors("bill from", "billed from", "invoice from", "sold by", "seller", "supplier", "vendor",
		"rechnungssteller", "lieferant", "verkäufer", "from", "von")
	buyerAnchors = anchors("bill to", "billed to", "invoice to", "sold to", "buyer", "customer", "client",
		"rechnungsempfänger", "kunde", "to", "an")
)

var (
	reFieldLine = regexp.MustCompile(`^[\p{L} .\-/]{1,30}:\s`)
	reTitleLine = label(`^\s*(?:tax\s+)?(?:invoice|rechnung|bill|receipt)\b`)
)

func anchors(keywords ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		pattern := strings.ReplaceAll(regexp.QuoteMeta(kw), " ", `\s+`)
		res = append(res, label(`^\s*(?:`+pattern+`)\s*(?::\s*(.*))?$`))
	}

	return res
}

// block is the run of lines that belongs to one party. The body starts at the
// first non-empty line after the anchor.
type block struct {
	start  int
	body   int
	end    int // exclusive
	inline string
}

func (b block) found() bool {
	return b.end > b.start
}

type party struct {
	name    string
	address string
	taxID   string
}

// findBlock returns the block opened by the first anchor (in anchor order)
// that matches a line.
func findBlock(lines []string, own []*regexp.Regexp) block {
	for _, re := range own {
		for i, line := range lines {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			inline := strings.TrimSpace(m[1])

			body := i + 1
			if inline == "" {
				for body < len(lines) && lines[body] == "" {
					body++
				}
			}

			end := body
			for end < len(lines) && end-body < maxBlockLines {
				if lines[end] == "" || isAnchor(lines[end]) || isItemRow(lines[end]) {
					break
				}
				end++
			}

			return block{start: i, body: body, end: end, inline: inline}
		}
	}

	return block{}
}

func isAnchor(line string) bool {
	for _, group := range [][]*regexp.Regexp{sellerAnchors, buyerAnchors} {
		for _, re := range group {
			if re.MatchString(line) {
				return true
			}
		}
	}

	return false
}

// readParty takes the name from the anchor line or the line after it, and the
// address from the plain lines that follow the name.
func readParty(lines []string, b block) party {
	var p party
	if !b.found() {
		return p
	}

	body := lines[b.body:b.end]

	switch {
	case plausibleName(b.inline):
		p.name = b.inline
	case len(body) > 0 && plausibleName(body[0]):
		p.name = body[0]
		body = body[1:]
	}

	var address []string

	for _, line := range body {
		if len(address) == 3 || reFieldLine.MatchString(line) || taxIDLabel.MatchString(line) ||
			matchesAny(line, labelStrategies...) {
			break
		}

		address = append(address, line)
	}

	p.address = strings.Join(address, ", ")
	p.taxID = taxIDIn(lines[b.start:b.end])

	return p
}

func taxIDIn(lines []string) string {
	for _, line := range lines {
		loc := taxIDLabel.FindStringIndex(line)
		if loc == nil {
			continue
		}

		if id, ok := taxIDValue(line[loc[1]:]); ok {
			return id
		}
	}

	return ""
}

func plausibleName(s string) bool {
	if len(s) < 2 || len(s) > 100 || reFieldLine.MatchString(s) || taxIDLabel.MatchString(s) {
		return false
	}

	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// letterhead returns the first plain line above any party block or field
// label; sellers print their name at the top of the page.
func letterhead(lines []string, stop int) string {
	for _, line := range lines[:stop] {
		if line == "" || reTitleLine.MatchString(line) {
			continue
		}

		if matchesAny(line, labelStrategies...) || isAnchor(line) {
			return ""
		}

		if plausibleName(line) && strings.IndexFunc(line, unicode.IsDigit) < 0 {
			return line
		}
	}

	return ""
}

// locateParties fills seller and buyer details.
func locateParties(lines []string) (seller, buyer party) {
	sb := findBlock(lines, sellerAnchors)
	bb := findBlock(lines, buyerAnchors)

	seller = readParty(lines, sb)
	buyer = readParty(lines, bb)

	if seller.name == "" {
		stop := len(lines)
		if bb.found() {
			stop = bb.start
		}

		seller.name = letterhead(lines, stop)
	}

	if seller.taxID == "" {
		outside := make([]string, len(lines))
		copy(outside, lines)

		if bb.found() {
			for i := bb.start; i < bb.end; i++ {
				outside[i] = ""
			}
		}

		seller.taxID = taxIDIn(outside)
	}

	return seller, buyer
}
