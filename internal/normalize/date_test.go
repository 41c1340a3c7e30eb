package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/normalize"
)

func fixedParser() normalize.DateParser {
	p := normalize.NewDateParser()
	p.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	return p
}

func TestDateParser_Parse(t *testing.T) {
	type testCase struct {
		name   string
		token  string
		want   invoice.Date
		wantOK bool
	}

	tests := []testCase{
		{name: "Dotted Day First", token: "10.01.2024", want: "2024-01-10", wantOK: true},
		{name: "Slashed Day First", token: "10/01/2024", want: "2024-01-10", wantOK: true},
		{name: "Dashed Day First", token: "10-01-2024", want: "2024-01-10", wantOK: true},
		{name: "Single Digits", token: "1.2.2024", want: "2024-02-01", wantOK: true},
		{name: "Long Month Day First", token: "10 January 2024", want: "2024-01-10", wantOK: true},
		{name: "Short Month Day First", token: "10 Jan 2024", want: "2024-01-10", wantOK: true},
		{name: "Month First When Day First Fails", token: "01/13/2024", want: "2024-01-13", wantOK: true},
		{name: "Month Name First", token: "Jan 10, 2024", want: "2024-01-10", wantOK: true},
		{name: "ISO", token: "2024-01-10", want: "2024-01-10", wantOK: true},
		{name: "ISO Slashed", token: "2024/01/10", want: "2024-01-10", wantOK: true},
		{name: "Surrounding Whitespace", token: "  10.01.2024 ", want: "2024-01-10", wantOK: true},
		{name: "Upper Window Edge", token: "31.12.2026", want: "2026-12-31", wantOK: true},
		{name: "Lower Window Edge", token: "01.01.2014", want: "2014-01-01", wantOK: true},
		{name: "Too Old", token: "31.12.2013", wantOK: false},
		{name: "Too Far Ahead", token: "01.01.2027", wantOK: false},
		{name: "Impossible Day", token: "32.01.2024", wantOK: false},
		{name: "Impossible Month ISO", token: "2024-13-01", wantOK: false},
		{name: "Two Digit Year", token: "10.01.24", wantOK: false},
		{name: "Extra Text", token: "Date 10.01.2024", wantOK: false},
		{name: "Empty", token: "", wantOK: false},
	}

	p := fixedParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.token)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDateParser_SameDateAcrossPasses(t *testing.T) {
	p := fixedParser()

	for _, token := range []string{"2024-01-10", "10.01.2024", "10/01/2024", "January 10, 2024"} {
		got, ok := p.Parse(token)
		assert.True(t, ok, token)
		assert.Equal(t, invoice.Date("2024-01-10"), got, token)
	}
}

func TestDateParser_CustomWindow(t *testing.T) {
	p := fixedParser()
	p.YearsBack = 1
	p.YearsForward = 0

	_, ok := p.Parse("01.01.2022")
	assert.False(t, ok)

	_, ok = p.Parse("01.01.2025")
	assert.False(t, ok)

	got, ok := p.Parse("01.01.2023")
	assert.True(t, ok)
	assert.Equal(t, invoice.Date("2023-01-01"), got)
}
