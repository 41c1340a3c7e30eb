package extract

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/invoiceqc/internal/document"
	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

// Document is an extracted invoice together with the id it was read from.
type Document struct {
	ID      string
	Invoice invoice.Invoice
}

// Failure records a document that could not be read.
type Failure struct {
	ID  string
	Err error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.ID, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Invoices returns the invoices of docs in order.
func Invoices(docs []Document) []invoice.Invoice {
	out := make([]invoice.Invoice, len(docs))
	for i, d := range docs {
		out[i] = d.Invoice
	}

	return out
}

// Entries pairs each invoice with its document id for batch validation.
func Entries(docs []Document) []validation.Entry {
	out := make([]validation.Entry, len(docs))
	for i, d := range docs {
		out[i] = validation.Entry{ID: d.ID, Invoice: d.Invoice}
	}

	return out
}

type Service struct {
	provider  document.Provider
	extractor Extractor
	workers   int
	logger    *slog.Logger
}

func NewService(provider document.Provider, extractor Extractor, workers int, logger *slog.Logger) *Service {
	if workers < 1 {
		workers = 1
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		provider:  provider,
		extractor: extractor,
		workers:   workers,
		logger:    logger,
	}
}

type outcome struct {
	doc *Document
	err error
}

// ExtractAll reads and extracts every document in ids. Documents are worked
// on concurrently, but both returned slices follow the order of ids. A
// document that cannot be read is reported as a Failure and the rest of the
// batch carries on. Once ctx is done, documents not yet started fail with the
// context error.
func (s *Service) ExtractAll(ctx context.Context, ids []string) ([]Document, []Failure) {
	outcomes := make([]outcome, len(ids))

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			outcomes[i] = outcome{err: err}
			continue
		}

		g.Go(func() error {
			pages, err := s.provider.Pages(ctx, id)
			if err != nil {
				outcomes[i] = outcome{err: err}
				return nil
			}

			outcomes[i] = outcome{doc: &Document{ID: id, Invoice: s.extractor.Extract(pages)}}

			return nil
		})
	}

	_ = g.Wait()

	var (
		docs     []Document
		failures []Failure
	)

	for i, o := range outcomes {
		if o.err != nil {
			s.logger.Warn("skipping document", "id", ids[i], "error", o.err)
			failures = append(failures, Failure{ID: ids[i], Err: o.err})

			continue
		}

		docs = append(docs, *o.doc)
	}

	s.logger.Info("extraction finished", "documents", len(docs), "failures", len(failures))

	return docs, failures
}
