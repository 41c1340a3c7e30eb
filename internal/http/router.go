package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/invoiceqc/internal/http/extraction"
	"github.com/MrJamesThe3rd/invoiceqc/internal/http/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/http/validate"
)

type Options struct {
	Name           string
	Version        string
	Timeout        time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// New builds the API router. reportsV1 may be nil when reports are not stored.
func New(
	opts Options,
	validateV1 *validate.Handler,
	extractV1 *extraction.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/", info(opts, reportsV1 != nil))
	router.Get("/health", health(opts))

	router.Route("/api/v1", func(r chi.Router) {
		if opts.MaxBodyBytes > 0 {
			r.Use(middleware.RequestSize(opts.MaxBodyBytes))
		}

		r.Route("/validate", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			validateV1.Routes(r)
		})

		r.Route("/extract", extractV1.Routes)

		if reportsV1 != nil {
			r.Route("/reports", reportsV1.Routes)
		}
	})

	return router
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func health(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, healthResponse{Status: "ok", Version: opts.Version})
	}
}

type infoResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func info(opts Options, reports bool) http.HandlerFunc {
	endpoints := map[string]string{
		"GET /health":           "liveness check",
		"POST /api/v1/validate": "validate a JSON list of invoices",
		"POST /api/v1/extract":  "extract and validate uploaded text documents",
	}

	if reports {
		endpoints["GET /api/v1/reports"] = "list saved reports"
		endpoints["GET /api/v1/reports/{id}"] = "fetch a saved report"
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, infoResponse{Name: opts.Name, Version: opts.Version, Endpoints: endpoints})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
