package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type reportResponse struct {
	ID        uuid.UUID          `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Summary   report.SummaryJSON `json:"summary"`
}

type reportListItem struct {
	ID              uuid.UUID `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	TotalInvoices   int       `json:"total_invoices"`
	ValidInvoices   int       `json:"valid_invoices"`
	InvalidInvoices int       `json:"invalid_invoices"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var limit int

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	reports, err := h.svc.List(r.Context(), limit)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]reportListItem, len(reports))
	for i, rep := range reports {
		resp[i] = reportListItem{
			ID:              rep.ID,
			CreatedAt:       rep.CreatedAt,
			TotalInvoices:   rep.Summary.TotalInvoices,
			ValidInvoices:   rep.Summary.ValidInvoices,
			InvalidInvoices: rep.Summary.InvalidInvoices,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rep, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	switch r.URL.Query().Get("format") {
	case "xlsx":
		data, err := report.XLSX(rep.Summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+rep.ID.String()+`.xlsx"`)

		if _, err := w.Write(data); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if err := report.Text(w, rep.Summary); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")

		resp := reportResponse{ID: rep.ID, CreatedAt: rep.CreatedAt, Summary: report.ToJSON(rep.Summary)}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}
