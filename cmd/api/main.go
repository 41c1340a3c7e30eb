package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoiceqc/internal/config"
	"github.com/MrJamesThe3rd/invoiceqc/internal/database"
	"github.com/MrJamesThe3rd/invoiceqc/internal/extract"
	qcHttp "github.com/MrJamesThe3rd/invoiceqc/internal/http"
	extractHandler "github.com/MrJamesThe3rd/invoiceqc/internal/http/extraction"
	reportHandler "github.com/MrJamesThe3rd/invoiceqc/internal/http/report"
	validateHandler "github.com/MrJamesThe3rd/invoiceqc/internal/http/validate"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	reportStore "github.com/MrJamesThe3rd/invoiceqc/internal/report/store"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		reportService *report.Service
		reportH       *reportHandler.Handler
	)

	if cfg.DB.Enabled {
		db, err := openDatabase(cfg)
		if err != nil {
			slog.Error("failed to prepare database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		reportService = report.NewService(reportStore.New(db))
		reportH = reportHandler.NewHandler(reportService)
	}

	var (
		dates     = cfg.DateParser()
		engine    = validation.NewEngine(dates)
		extractor = extract.NewExtractor(dates)
	)

	var (
		validateH = validateHandler.NewHandler(engine, reportService)
		extractH  = extractHandler.NewHandler(extractor, engine, reportService, cfg.Extract.Workers)
	)

	router := qcHttp.New(qcHttp.Options{
		Name:           cfg.App.Name,
		Version:        version,
		Timeout:        cfg.Server.Timeout,
		MaxBodyBytes:   cfg.Server.MaxUploadBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, validateH, extractH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "reports", cfg.DB.Enabled)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
