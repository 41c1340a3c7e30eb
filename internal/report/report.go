// Package report renders validation summaries and keeps saved reports.
package report

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

var ErrNotFound = errors.New("report not found")

// Report is a saved validation summary.
type Report struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Summary   validation.Summary
}
