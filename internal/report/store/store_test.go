package store_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report/store"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

const summaryJSON = `{"total_invoices":1,"valid_invoices":0,"invalid_invoices":1,` +
	`"error_counts":{"totals_mismatch":1},` +
	`"results":[{"invoice_id":"INV-1","is_valid":false,"errors":["totals_mismatch"]}]}`

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return store.New(db), mock
}

func TestStore_CreateReport(t *testing.T) {
	s, mock := newStore(t)

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reports")).
		WithArgs(sqlmock.AnyArg(), 2, 1, 1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	r := &report.Report{Summary: validation.Summary{
		TotalInvoices:   2,
		ValidInvoices:   1,
		InvalidInvoices: 1,
		ErrorCounts:     map[validation.Code]int{validation.InvalidCurrency: 1},
	}}

	require.NoError(t, s.CreateReport(context.Background(), r))
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, created, r.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateReport_Error(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reports")).WillReturnError(errors.New("db down"))

	err := s.CreateReport(context.Background(), &report.Report{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetReport(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(mock sqlmock.Sqlmock, id uuid.UUID)
		wantErr error
	}

	tests := []testCase{
		{
			name: "Found",
			setup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, created_at, summary FROM reports WHERE id = $1")).
					WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "summary"}).
						AddRow(id.String(), time.Now(), []byte(summaryJSON)))
			},
		},
		{
			name: "Not found",
			setup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE id = $1")).
					WithArgs(id).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: report.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			id := uuid.New()
			tt.setup(mock, id)

			got, err := s.GetReport(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, 1, got.Summary.InvalidInvoices)
			assert.Equal(t, []validation.Code{validation.TotalsMismatch}, got.Summary.Results[0].Errors)
			assert.Equal(t, 1, got.Summary.ErrorCounts[validation.TotalsMismatch])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_ListReports(t *testing.T) {
	s, mock := newStore(t)

	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "summary"}).
			AddRow(a.String(), time.Now(), []byte(summaryJSON)).
			AddRow(b.String(), time.Now(), []byte(summaryJSON)))

	got, err := s.ListReports(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].ID)
	assert.Equal(t, b, got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListReports_BadSummary(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reports ORDER BY")).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "summary"}).
			AddRow(uuid.New().String(), time.Now(), []byte("not json")))

	_, err := s.ListReports(context.Background(), 20)
	assert.Error(t, err)
}
