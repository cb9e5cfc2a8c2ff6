package advisory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/arthamitra/arthamitra/infra/provider/mocknav"
	"github.com/arthamitra/arthamitra/infra/provider/personastatic"
	"github.com/arthamitra/arthamitra/pkg/dto"
	"github.com/arthamitra/arthamitra/pkg/provider"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubHoldingRepo serves a fixed holding list; only ListByUser is exercised
// by the advisory reads.
type stubHoldingRepo struct {
	holdings []*dto.HoldingRead
}

func (s *stubHoldingRepo) Upsert(context.Context, dto.HoldingUpsert) (bool, error) {
	panic("not used")
}

func (s *stubHoldingRepo) Get(context.Context, uuid.UUID, uuid.UUID) (*dto.HoldingRead, error) {
	panic("not used")
}

func (s *stubHoldingRepo) ListByUser(context.Context, uuid.UUID) ([]*dto.HoldingRead, error) {
	return s.holdings, nil
}

func (s *stubHoldingRepo) Delete(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	panic("not used")
}

type stubTransactionRepo struct {
	transactions []*dto.TransactionRead
}

func (s *stubTransactionRepo) InsertIgnoreDuplicates(context.Context, dto.TransactionCreate) (bool, error) {
	panic("not used")
}

func (s *stubTransactionRepo) ListByPortfolio(context.Context, uuid.UUID) ([]*dto.TransactionRead, error) {
	return s.transactions, nil
}

func holdingRow(isin, assetType, quantity string) *dto.HoldingRead {
	return &dto.HoldingRead{
		ID:        uuid.New(),
		ISIN:      isin,
		AssetType: assetType,
		Quantity:  decimal.RequireFromString(quantity),
		Source:    "MANUAL",
	}
}

func newTestService(
	holdings []*dto.HoldingRead,
	prices provider.PriceProvider,
	personas provider.PersonaProvider,
) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(&stubHoldingRepo{holdings: holdings}, &stubTransactionRepo{}, prices, personas, DefaultScorePolicy(), logger)
}

func TestGetHoldings_Valuation(t *testing.T) {
	ctx := context.Background()
	// The mock prices every instrument at 100.
	svc := newTestService([]*dto.HoldingRead{
		holdingRow("INE002A01018", "EQUITY", "10"),
		holdingRow("INF179K01UT0", "MUTUAL_FUND", "30"),
	}, mocknav.New(), personastatic.New("BALANCED"))

	enriched, summary, err := svc.GetHoldings(ctx, uuid.New())
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	require.NotNil(t, enriched[0].CurrentNav)
	assert.True(t, enriched[0].CurrentNav.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, enriched[0].LastValuation)
	assert.True(t, enriched[0].LastValuation.Equal(decimal.NewFromInt(1000)))

	assert.Equal(t, 2, summary.HoldingsCount)
	assert.True(t, summary.TotalValuation.Equal(decimal.NewFromInt(4000)))
}

func TestGetHoldings_PriceLookupFailureDegrades(t *testing.T) {
	ctx := context.Background()
	prices := mocknav.New()
	prices.GetCurrentPriceFunc = func(_ context.Context, isin string) (*provider.Quote, error) {
		if isin == "INF179K01UT0" {
			return nil, provider.ErrPriceNotFound
		}
		return &provider.Quote{ISIN: isin, Nav: decimal.NewFromInt(100)}, nil
	}
	svc := newTestService([]*dto.HoldingRead{
		holdingRow("INE002A01018", "EQUITY", "10"),
		holdingRow("INF179K01UT0", "MUTUAL_FUND", "30"),
	}, prices, personastatic.New("BALANCED"))

	enriched, summary, err := svc.GetHoldings(ctx, uuid.New())
	require.NoError(t, err, "a failed price lookup must not fail the read")
	require.Len(t, enriched, 2)

	assert.Nil(t, enriched[1].CurrentNav)
	assert.Nil(t, enriched[1].LastValuation)
	assert.True(t, summary.TotalValuation.Equal(decimal.NewFromInt(1000)),
		"unpriced holdings contribute zero to the total")
}

func TestGetHoldings_EmptyPortfolio(t *testing.T) {
	svc := newTestService(nil, mocknav.New(), personastatic.New("BALANCED"))
	enriched, summary, err := svc.GetHoldings(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, enriched)
	assert.Equal(t, 0, summary.HoldingsCount)
	assert.True(t, summary.TotalValuation.IsZero())
}

func TestGetPortfolioAlignment(t *testing.T) {
	ctx := context.Background()
	// 10 equity units and 30 fund units at NAV 100 each: 25% / 75%.
	holdings := []*dto.HoldingRead{
		holdingRow("INE002A01018", "EQUITY", "10"),
		holdingRow("INF179K01UT0", "MUTUAL_FUND", "30"),
	}

	t.Run("perfect match scores 100 with no flags", func(t *testing.T) {
		svc := newTestService([]*dto.HoldingRead{
			holdingRow("INE002A01018", "EQUITY", "20"),
			holdingRow("INF179K01UT0", "MUTUAL_FUND", "20"),
		}, mocknav.New(), personastatic.New("BALANCED"))

		alignment, err := svc.GetPortfolioAlignment(ctx, uuid.New())
		require.NoError(t, err)
		require.NotNil(t, alignment.Score)
		assert.Equal(t, 100.0, *alignment.Score)
		assert.Empty(t, alignment.Flags)
		assert.Equal(t, "BALANCED", alignment.Persona)
	})

	t.Run("small deviation stays unflagged", func(t *testing.T) {
		// Conservative target is 20/80, actual is 25/75: deviation 5 points.
		svc := newTestService(holdings, mocknav.New(), personastatic.New("CONSERVATIVE"))

		alignment, err := svc.GetPortfolioAlignment(ctx, uuid.New())
		require.NoError(t, err)
		require.NotNil(t, alignment.Score)
		assert.Equal(t, 93.8, *alignment.Score)
		assert.Empty(t, alignment.Flags)
	})

	t.Run("large deviation warns", func(t *testing.T) {
		// Aggressive target is 80/20, actual is 25/75: deviation 55 points.
		svc := newTestService(holdings, mocknav.New(), personastatic.New("AGGRESSIVE"))

		alignment, err := svc.GetPortfolioAlignment(ctx, uuid.New())
		require.NoError(t, err)
		require.NotNil(t, alignment.Score)
		assert.Equal(t, 31.3, *alignment.Score)
		require.Len(t, alignment.Flags, 1)
		assert.Equal(t, "warning", alignment.Flags[0].Type)
		assert.Contains(t, alignment.Flags[0].Message, "underweight equity")
	})

	t.Run("missing persona degrades to a nil score", func(t *testing.T) {
		svc := newTestService(holdings, mocknav.New(), personastatic.New(""))

		alignment, err := svc.GetPortfolioAlignment(ctx, uuid.New())
		require.NoError(t, err, "a missing persona must not fail the read")
		assert.Nil(t, alignment.Score)
		assert.Empty(t, alignment.Flags)
		assert.Equal(t, 25.0, alignment.Actual.Equity)
		assert.Equal(t, 75.0, alignment.Actual.MutualFund)
	})
}

func TestScoreProperties(t *testing.T) {
	svc := newTestService(nil, mocknav.New(), personastatic.New("BALANCED"))

	t.Run("score never leaves the 0..100 range", func(t *testing.T) {
		for deviation := 0.0; deviation <= 100; deviation += 2.5 {
			score := clamp(100-deviation*svc.policy.PenaltyPerPoint, 0, 100)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	})

	t.Run("score is monotonically non-increasing in deviation", func(t *testing.T) {
		prev := 101.0
		for deviation := 0.0; deviation <= 100; deviation += 2.5 {
			score := clamp(100-deviation*svc.policy.PenaltyPerPoint, 0, 100)
			assert.LessOrEqual(t, score, prev)
			prev = score
		}
	})
}

func TestMeanAbsDeviation(t *testing.T) {
	assert.Equal(t, 0.0, meanAbsDeviation(
		provider.Allocation{Equity: 50, MutualFund: 50},
		provider.Allocation{Equity: 50, MutualFund: 50},
	))
	assert.Equal(t, 5.0, meanAbsDeviation(
		provider.Allocation{Equity: 25, MutualFund: 75},
		provider.Allocation{Equity: 20, MutualFund: 80},
	))
	assert.Equal(t, 55.0, meanAbsDeviation(
		provider.Allocation{Equity: 25, MutualFund: 75},
		provider.Allocation{Equity: 80, MutualFund: 20},
	))
}

func TestActualAllocation_EmptyAndUnpriced(t *testing.T) {
	assert.Equal(t, provider.Allocation{}, actualAllocation(nil))

	// Holdings without a valuation contribute nothing.
	unpriced := []EnrichedHolding{{AssetType: "EQUITY", Quantity: decimal.NewFromInt(10)}}
	assert.Equal(t, provider.Allocation{}, actualAllocation(unpriced))
}
