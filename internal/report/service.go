package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	CreateReport(ctx context.Context, r *Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*Report, error)
	ListReports(ctx context.Context, limit int) ([]*Report, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Save(ctx context.Context, summary validation.Summary) (*Report, error) {
	r := &Report{Summary: summary}
	if err := s.repo.CreateReport(ctx, r); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.repo.GetReport(ctx, id)
}

// List returns the newest reports first. limit is clamped to [1, MaxListLimit];
// zero or less means DefaultListLimit.
func (s *Service) List(ctx context.Context, limit int) ([]*Report, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	return s.repo.ListReports(ctx, limit)
}
