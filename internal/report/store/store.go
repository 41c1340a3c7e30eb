package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanReport expects the columns id, created_at, summary.
func scanReport(s scanner) (*report.Report, error) {
	var (
		r   report.Report
		raw []byte
	)

	if err := s.Scan(&r.ID, &r.CreatedAt, &raw); err != nil {
		return nil, err
	}

	var summary report.SummaryJSON
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("decoding summary of report %s: %w", r.ID, err)
	}

	r.Summary = summary.Summary()

	return &r, nil
}

func (s *Store) CreateReport(ctx context.Context, r *report.Report) error {
	raw, err := json.Marshal(report.ToJSON(r.Summary))
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	query := `
		INSERT INTO reports (id, total_invoices, valid_invoices, invalid_invoices, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	id := uuid.New()

	err = s.db.QueryRowContext(ctx, query,
		id,
		r.Summary.TotalInvoices,
		r.Summary.ValidInvoices,
		r.Summary.InvalidInvoices,
		raw,
	).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	r.ID = id

	return nil
}

func (s *Store) GetReport(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	query := `SELECT id, created_at, summary FROM reports WHERE id = $1`

	r, err := scanReport(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, report.ErrNotFound
		}

		return nil, fmt.Errorf("getting report: %w", err)
	}

	return r, nil
}

func (s *Store) ListReports(ctx context.Context, limit int) ([]*report.Report, error) {
	query := `SELECT id, created_at, summary FROM reports ORDER BY created_at DESC LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []*report.Report

	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}

		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}
