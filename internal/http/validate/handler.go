package validate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoiceqc/internal/intake"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	engine  *validation.Engine
	reports *report.Service
}

// NewHandler returns a handler that validates submitted batches. reports may
// be nil, in which case summaries are not stored.
func NewHandler(engine *validation.Engine, reports *report.Service) *Handler {
	return &Handler{engine: engine, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.validate)
}

type validateResponse struct {
	ReportID *uuid.UUID `json:"report_id,omitempty"`
	report.SummaryJSON
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	invoices, err := intake.Decode(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary := h.engine.ValidateBatch(validation.Entries(invoices))

	resp := validateResponse{SummaryJSON: report.ToJSON(summary)}

	if h.reports != nil {
		saved, err := h.reports.Save(r.Context(), summary)
		if err != nil {
			slog.Error("failed to save report", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		resp.ReportID = &saved.ID
	}

	if r.URL.Query().Get("format") == "xlsx" {
		writeXLSX(w, summary)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeXLSX(w http.ResponseWriter, summary validation.Summary) {
	data, err := report.XLSX(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="validation.xlsx"`)

	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
