package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoiceqc/internal/document"
	"github.com/MrJamesThe3rd/invoiceqc/internal/extract"
	"github.com/MrJamesThe3rd/invoiceqc/internal/intake"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

const (
	filesField = "files"
	maxMemory  = 10 << 20
)

var errEmptyUpload = errors.New("empty document")

type Handler struct {
	extractor extract.Extractor
	engine    *validation.Engine
	reports   *report.Service
	workers   int
}

// NewHandler returns a handler that extracts and validates uploaded text
// documents. reports may be nil, in which case summaries are not stored.
func NewHandler(extractor extract.Extractor, engine *validation.Engine, reports *report.Service, workers int) *Handler {
	return &Handler{
		extractor: extractor,
		engine:    engine,
		reports:   reports,
		workers:   workers,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.extract)
}

type documentResponse struct {
	ID      string        `json:"id"`
	Invoice intake.Record `json:"invoice"`
}

type failureResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type extractResponse struct {
	ReportID   *uuid.UUID         `json:"report_id,omitempty"`
	Invoices   []documentResponse `json:"invoices"`
	Validation report.SummaryJSON `json:"validation"`
	Failures   []failureResponse  `json:"failures"`
}

func (h *Handler) extract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Error("failed to remove multipart files", "error", err)
		}
	}()

	uploads := r.MultipartForm.File[filesField]
	if len(uploads) == 0 {
		http.Error(w, "files field is required", http.StatusBadRequest)
		return
	}

	provider := document.NewMemProvider()
	failures := make([]failureResponse, 0)

	for _, fh := range uploads {
		name := filepath.Base(fh.Filename)

		data, err := readUpload(fh)
		if err != nil {
			failures = append(failures, failureResponse{ID: name, Error: err.Error()})
			continue
		}

		provider.Add(name, data)
	}

	svc := extract.NewService(provider, h.extractor, h.workers, slog.Default())
	docs, extractFailures := svc.ExtractAll(r.Context(), provider.List())

	for _, f := range extractFailures {
		failures = append(failures, failureResponse{ID: f.ID, Error: f.Err.Error()})
	}

	if len(docs) == 0 {
		http.Error(w, "no readable documents", http.StatusBadRequest)
		return
	}

	summary := h.engine.ValidateBatch(extract.Entries(docs))

	invoices := make([]documentResponse, len(docs))
	for i, rec := range intake.Records(extract.Invoices(docs)) {
		invoices[i] = documentResponse{ID: docs[i].ID, Invoice: rec}
	}

	resp := extractResponse{
		Invoices:   invoices,
		Validation: report.ToJSON(summary),
		Failures:   failures,
	}

	if h.reports != nil {
		saved, err := h.reports.Save(r.Context(), summary)
		if err != nil {
			slog.Error("failed to save report", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		resp.ReportID = &saved.ID
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if !document.Supported(fh.Filename) {
		return nil, document.ErrUnsupportedFile
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	if len(data) == 0 {
		return nil, errEmptyUpload
	}

	return data, nil
}
