package document_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/internal/document"
)

func TestSplit(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  []string
	}

	tests := []testCase{
		{
			name:  "Single page",
			input: "Invoice No: 1\nTotal: 10.00",
			want:  []string{"Invoice No: 1\nTotal: 10.00"},
		},
		{
			name:  "Form feed separates pages",
			input: "page one\fpage two",
			want:  []string{"page one", "page two"},
		},
		{
			name:  "Trailing form feed",
			input: "page one\fpage two\f\n",
			want:  []string{"page one", "page two"},
		},
		{
			name:  "UTF-8 BOM is stripped",
			input: "\xEF\xBB\xBFRechnung",
			want:  []string{"Rechnung"},
		},
		{
			name:  "Empty input",
			input: "",
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := document.Split(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirProvider(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"b.txt":     "second\fpage",
		"a.TXT":     "first",
		"scan.pdf":  "%PDF",
		"notes.md":  "ignored",
		"c.txt.bak": "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o700))

	p := document.NewDirProvider(dir)

	ids, err := p.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.TXT", "b.txt"}, ids)

	pages, err := p.Pages(context.Background(), "b.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "page"}, pages)

	_, err = p.Pages(context.Background(), "scan.pdf")
	assert.True(t, errors.Is(err, document.ErrUnsupportedFile))

	_, err = p.Pages(context.Background(), "missing.txt")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Pages(ctx, "a.TXT")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDirProvider_MissingDir(t *testing.T) {
	_, err := document.NewDirProvider(filepath.Join(t.TempDir(), "nope")).List()
	assert.Error(t, err)
}

func TestSplit_Binary(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

	_, err := document.Split(strings.NewReader(png))
	assert.ErrorIs(t, err, document.ErrUnsupportedFile)
}

func TestMemProvider(t *testing.T) {
	p := document.NewMemProvider()

	first := p.Add("inv.txt", []byte("one\ftwo"))
	second := p.Add("inv.txt", []byte("three"))
	third := p.Add("scan.txt", []byte("\x00\x01\x02"))

	assert.Equal(t, "inv.txt", first)
	assert.Equal(t, "inv.txt (2)", second)
	assert.Equal(t, []string{"inv.txt", "inv.txt (2)", "scan.txt"}, p.List())

	pages, err := p.Pages(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, pages)

	pages, err = p.Pages(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, []string{"three"}, pages)

	_, err = p.Pages(context.Background(), third)
	assert.ErrorIs(t, err, document.ErrUnsupportedFile)

	_, err = p.Pages(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
