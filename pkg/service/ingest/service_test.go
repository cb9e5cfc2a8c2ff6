package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/arthamitra/arthamitra/pkg/dto"
	"github.com/arthamitra/arthamitra/pkg/importer"
	"github.com/arthamitra/arthamitra/pkg/importer/csvimport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memHoldingRepo is an in-memory holding store keyed exactly like the
// database unique index, so replace semantics are observable in tests.
type memHoldingRepo struct {
	rows      map[string]dto.HoldingUpsert
	upsertErr error
}

func newMemHoldingRepo() *memHoldingRepo {
	return &memHoldingRepo{rows: make(map[string]dto.HoldingUpsert)}
}

func holdingKey(userID uuid.UUID, isin, source string) string {
	return userID.String() + "|" + isin + "|" + source
}

func (m *memHoldingRepo) Upsert(_ context.Context, upsert dto.HoldingUpsert) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	key := holdingKey(upsert.UserID, upsert.ISIN, upsert.Source)
	_, exists := m.rows[key]
	if exists {
		existing := m.rows[key]
		existing.AssetType = upsert.AssetType
		existing.Quantity = upsert.Quantity
		m.rows[key] = existing
		return false, nil
	}
	m.rows[key] = upsert
	return true, nil
}

func (m *memHoldingRepo) Get(_ context.Context, userID, id uuid.UUID) (*dto.HoldingRead, error) {
	for _, row := range m.rows {
		if row.ID == id && row.UserID == userID {
			return &dto.HoldingRead{ID: row.ID, UserID: row.UserID, ISIN: row.ISIN}, nil
		}
	}
	return nil, portfolio.ErrHoldingNotFound
}

func (m *memHoldingRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*dto.HoldingRead, error) {
	var result []*dto.HoldingRead
	for _, row := range m.rows {
		if row.UserID == userID {
			result = append(result, &dto.HoldingRead{
				ID: row.ID, UserID: row.UserID, ISIN: row.ISIN,
				AssetType: row.AssetType, Quantity: row.Quantity, Source: row.Source,
			})
		}
	}
	return result, nil
}

func (m *memHoldingRepo) Delete(_ context.Context, userID, id uuid.UUID) (int64, error) {
	for key, row := range m.rows {
		if row.ID == id && row.UserID == userID {
			delete(m.rows, key)
			return 1, nil
		}
	}
	return 0, nil
}

// memTransactionRepo mirrors the append-once dedup index in memory.
type memTransactionRepo struct {
	rows map[string]dto.TransactionCreate
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{rows: make(map[string]dto.TransactionCreate)}
}

func dedupKey(c dto.TransactionCreate) string {
	return c.PortfolioID.String() + "|" + c.ISIN + "|" + c.Date.Format(time.RFC3339) +
		"|" + c.Type + "|" + c.Units.String() + "|" + c.Amount.String()
}

func (m *memTransactionRepo) InsertIgnoreDuplicates(_ context.Context, create dto.TransactionCreate) (bool, error) {
	key := dedupKey(create)
	if _, exists := m.rows[key]; exists {
		return false, nil
	}
	m.rows[key] = create
	return true, nil
}

func (m *memTransactionRepo) ListByPortfolio(_ context.Context, portfolioID uuid.UUID) ([]*dto.TransactionRead, error) {
	var result []*dto.TransactionRead
	for _, row := range m.rows {
		if row.PortfolioID == portfolioID {
			result = append(result, &dto.TransactionRead{ID: row.ID, ISIN: row.ISIN})
		}
	}
	return result, nil
}

func newTestService(holdings *memHoldingRepo, transactions *memTransactionRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(holdings, transactions, nil, logger)
}

func TestAddManualHolding_ReplaceSemantics(t *testing.T) {
	ctx := context.Background()
	holdings := newMemHoldingRepo()
	svc := newTestService(holdings, newMemTransactionRepo())
	userID := uuid.New()

	merge, err := svc.AddManualHolding(ctx, userID, "INE002A01018", "EQUITY", "10")
	require.NoError(t, err)
	assert.Equal(t, 1, merge.Inserted)
	assert.Equal(t, 0, merge.Updated)
	assert.Equal(t, 1, merge.Imported())

	// Re-adding the same ISIN from the same source replaces the quantity
	// instead of creating a second row.
	merge, err = svc.AddManualHolding(ctx, userID, "INE002A01018", "EQUITY", "25")
	require.NoError(t, err)
	assert.Equal(t, 0, merge.Inserted)
	assert.Equal(t, 1, merge.Updated)

	require.Len(t, holdings.rows, 1)
	stored := holdings.rows[holdingKey(userID, "INE002A01018", "MANUAL")]
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(25)))
}

func TestAddManualHolding_ValidationFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	holdings := newMemHoldingRepo()
	svc := newTestService(holdings, newMemTransactionRepo())

	tests := []struct {
		name        string
		isin        string
		assetType   string
		quantity    string
		expectedErr error
	}{
		{"invalid ISIN", "bogus", "EQUITY", "10", portfolio.ErrInvalidISINFormat},
		{"invalid asset type", "INE002A01018", "GOLD", "10", portfolio.ErrInvalidAssetType},
		{"invalid quantity", "INE002A01018", "EQUITY", "0", portfolio.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merge, err := svc.AddManualHolding(ctx, uuid.New(), tt.isin, tt.assetType, tt.quantity)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, merge)
		})
	}
	assert.Empty(t, holdings.rows)
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	holdings := newMemHoldingRepo()
	svc := newTestService(holdings, newMemTransactionRepo())
	userID := uuid.New()

	csvText := `isin,asset_type,quantity
INE002A01018,EQUITY,10
INF179K01UT0,MUTUAL_FUND,21.338
broken-row,EQUITY,5
`
	merge, err := svc.ImportCSV(ctx, userID, csvText)
	require.NoError(t, err)
	assert.Equal(t, 2, merge.Inserted)
	assert.Equal(t, 0, merge.Updated)
	require.Len(t, merge.Errors, 1)
	assert.Equal(t, 4, merge.Errors[0].Row)

	// Same batch again: every row flips from inserted to updated, the store
	// does not grow.
	merge, err = svc.ImportCSV(ctx, userID, csvText)
	require.NoError(t, err)
	assert.Equal(t, 0, merge.Inserted)
	assert.Equal(t, 2, merge.Updated)
	assert.Len(t, holdings.rows, 2)
}

func TestImportCSV_MissingHeaderAbortsBatch(t *testing.T) {
	svc := newTestService(newMemHoldingRepo(), newMemTransactionRepo())
	merge, err := svc.ImportCSV(context.Background(), uuid.New(), "INE002A01018,EQUITY,10\n")
	assert.ErrorIs(t, err, csvimport.ErrMissingHeader)
	assert.Nil(t, merge)
}

func TestReconcile_TransactionsAppendOnce(t *testing.T) {
	ctx := context.Background()
	transactions := newMemTransactionRepo()
	svc := newTestService(newMemHoldingRepo(), transactions)
	userID := uuid.New()

	result := &importer.Result{
		Source: portfolio.SourceCAS,
		Transactions: []importer.ParsedTransaction{
			{
				ISIN:   "INF179K01UT0",
				Date:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				Type:   portfolio.TxnSIP,
				Units:  decimal.RequireFromString("35.4610"),
				Amount: decimal.RequireFromString("5000.00"),
			},
		},
	}

	merge, err := svc.Reconcile(ctx, userID, result)
	require.NoError(t, err)
	assert.Equal(t, 0, merge.Skipped)
	assert.Len(t, transactions.rows, 1)

	// Re-uploading the same statement skips the exact duplicate.
	merge, err = svc.Reconcile(ctx, userID, result)
	require.NoError(t, err)
	assert.Equal(t, 1, merge.Skipped)
	assert.Len(t, transactions.rows, 1)
}

func TestReconcile_StorageFailureAborts(t *testing.T) {
	holdings := newMemHoldingRepo()
	holdings.upsertErr = errors.New("connection reset")
	svc := newTestService(holdings, newMemTransactionRepo())

	result := &importer.Result{
		Source: portfolio.SourceCSV,
		Candidates: []importer.Candidate{
			{ISIN: "INE002A01018", AssetType: portfolio.AssetTypeEquity, Quantity: decimal.NewFromInt(1)},
		},
	}
	merge, err := svc.Reconcile(context.Background(), uuid.New(), result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, merge)
}

func TestDeleteHolding(t *testing.T) {
	ctx := context.Background()
	holdings := newMemHoldingRepo()
	svc := newTestService(holdings, newMemTransactionRepo())
	userID := uuid.New()

	merge, err := svc.AddManualHolding(ctx, userID, "INE002A01018", "EQUITY", "10")
	require.NoError(t, err)
	require.Equal(t, 1, merge.Inserted)
	stored := holdings.rows[holdingKey(userID, "INE002A01018", "MANUAL")]

	t.Run("another user's id yields not found", func(t *testing.T) {
		err := svc.DeleteHolding(ctx, uuid.New(), stored.ID)
		assert.ErrorIs(t, err, portfolio.ErrHoldingNotFound)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteHolding(ctx, userID, stored.ID))
		assert.Empty(t, holdings.rows)
	})

	t.Run("deleting again yields not found", func(t *testing.T) {
		err := svc.DeleteHolding(ctx, userID, stored.ID)
		assert.ErrorIs(t, err, portfolio.ErrHoldingNotFound)
	})
}
