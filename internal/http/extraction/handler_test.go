package extraction_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/internal/extract"
	"github.com/MrJamesThe3rd/invoiceqc/internal/http/extraction"
	"github.com/MrJamesThe3rd/invoiceqc/internal/normalize"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

func TestExtract_RemovesSpilledUploads(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	// Files above the in-memory limit are written to the temp dir while parsing.
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	w, err := mw.CreateFormFile("files", "scan.pdf")
	require.NoError(t, err)

	_, err = w.Write([]byte(strings.Repeat("a", 11<<20)))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	dates := normalize.NewDateParser()
	h := extraction.NewHandler(extract.NewExtractor(dates), validation.NewEngine(dates), nil, 1)

	r := chi.NewRouter()
	h.Routes(r)

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	left, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, left)
}
