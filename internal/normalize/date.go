package normalize

import (
	"strings"
	"time"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

const (
	DefaultYearsBack    = 10
	DefaultYearsForward = 2
)

// dateLayouts is the ordered list of accepted date forms. Day-first European
// forms come first, then US month-first forms, then ISO. The first layout that
// consumes the whole token wins.
var dateLayouts = []string{
	// Day-first.
	"2.1.2006",
	"2/1/2006",
	"2-1-2006",
	"2 January 2006",
	"2 Jan 2006",
	"2. January 2006",
	"2-Jan-2006",

	// Month-first.
	"1/2/2006",
	"1-2-2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",

	// ISO.
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
}

// DateParser resolves date tokens and rejects years outside a window around
// the evaluation time.
type DateParser struct {
	Now          func() time.Time
	YearsBack    int
	YearsForward int
}

// NewDateParser returns a parser with the default window, evaluated against the wall clock.
func NewDateParser() DateParser {
	return DateParser{
		Now:          time.Now,
		YearsBack:    DefaultYearsBack,
		YearsForward: DefaultYearsForward,
	}
}

// Parse returns the canonical date for token. Tokens that match no layout or
// fall outside the window are reported as unparseable.
func (p DateParser) Parse(token string) (invoice.Date, bool) {
	token = strings.Join(strings.Fields(token), " ")
	if token == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, token)
		if err != nil {
			continue
		}

		if !p.InWindow(t) {
			return "", false
		}

		return invoice.NewDate(t), true
	}

	return "", false
}

// InWindow reports whether t's year lies inside the sanity window.
func (p DateParser) InWindow(t time.Time) bool {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	year := now().Year()

	return t.Year() >= year-p.YearsBack && t.Year() <= year+p.YearsForward
}
