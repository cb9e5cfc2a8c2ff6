// Package advisory computes read-time portfolio views: per-holding valuation
// from the price collaborator and an alignment score of the actual asset
// allocation against the user's persona target.
package advisory

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/arthamitra/arthamitra/pkg/dto"
	"github.com/arthamitra/arthamitra/pkg/provider"
	holdingrepo "github.com/arthamitra/arthamitra/pkg/repository/holding"
	transactionrepo "github.com/arthamitra/arthamitra/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScorePolicy holds the tunable alignment-score constants. The deduction
// curve is policy, not contract; the binding invariants are that the score
// stays in [0, 100], equals 100 at zero deviation and never increases with
// deviation.
type ScorePolicy struct {
	// PenaltyPerPoint is the score deduction per percentage point of mean
	// absolute allocation deviation.
	PenaltyPerPoint float64
	// WarnThreshold is the deviation (in points) above which a warning flag
	// is emitted.
	WarnThreshold float64
	// SuggestThreshold is the deviation above which a suggestion flag is
	// emitted.
	SuggestThreshold float64
}

// DefaultScorePolicy mirrors the advisory defaults used in production.
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		PenaltyPerPoint:  1.25,
		WarnThreshold:    15,
		SuggestThreshold: 5,
	}
}

// EnrichedHolding is a stored holding decorated with the current NAV and
// valuation. Nav and valuation are nil when the price lookup failed; the
// holding still contributes zero to aggregate totals.
type EnrichedHolding struct {
	ID            uuid.UUID        `json:"id"`
	ISIN          string           `json:"isin"`
	AssetType     string           `json:"assetType"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Source        string           `json:"source"`
	CurrentNav    *decimal.Decimal `json:"currentNav"`
	LastValuation *decimal.Decimal `json:"lastValuation"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Summary aggregates a user's enriched holdings.
type Summary struct {
	TotalValuation decimal.Decimal `json:"totalValuation"`
	HoldingsCount  int             `json:"holdingsCount"`
}

// AdvisoryFlag signals an allocation deviation to the user. Type is either
// "warning" (severe) or "suggestion" (mild).
type AdvisoryFlag struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Alignment is the portfolio-level allocation view. Score is nil when the
// user has no assigned persona; the read still succeeds.
type Alignment struct {
	Score   *float64            `json:"alignmentScore"`
	Actual  provider.Allocation `json:"actualAllocation"`
	Ideal   provider.Allocation `json:"idealAllocation"`
	Flags   []AdvisoryFlag      `json:"advisoryFlags"`
	Persona string              `json:"persona"`
}

// Service computes valuations and alignment scores on read.
type Service struct {
	holdings     holdingrepo.Repository
	transactions transactionrepo.Repository
	prices       provider.PriceProvider
	personas     provider.PersonaProvider
	policy       ScorePolicy
	logger       *slog.Logger
}

// New creates the advisory service.
func New(
	holdings holdingrepo.Repository,
	transactions transactionrepo.Repository,
	prices provider.PriceProvider,
	personas provider.PersonaProvider,
	policy ScorePolicy,
	logger *slog.Logger,
) *Service {
	return &Service{
		holdings:     holdings,
		transactions: transactions,
		prices:       prices,
		personas:     personas,
		policy:       policy,
		logger:       logger,
	}
}

// GetHoldings returns the user's holdings enriched with current valuations
// and an aggregate summary. A failed price lookup leaves that holding's
// valuation fields nil and never fails the read.
func (s *Service) GetHoldings(ctx context.Context, userID uuid.UUID) ([]EnrichedHolding, *Summary, error) {
	stored, err := s.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	enriched := make([]EnrichedHolding, 0, len(stored))
	total := decimal.Zero
	for _, h := range stored {
		e := EnrichedHolding{
			ID:        h.ID,
			ISIN:      h.ISIN,
			AssetType: h.AssetType,
			Quantity:  h.Quantity,
			Source:    h.Source,
			CreatedAt: h.CreatedAt,
			UpdatedAt: h.UpdatedAt,
		}
		if quote, err := s.prices.GetCurrentPrice(ctx, h.ISIN); err != nil {
			s.logger.Warn("price lookup failed", "isin", h.ISIN, "error", err)
		} else {
			nav := quote.Nav
			valuation := h.Quantity.Mul(nav)
			e.CurrentNav = &nav
			e.LastValuation = &valuation
			total = total.Add(valuation)
		}
		enriched = append(enriched, e)
	}

	return enriched, &Summary{TotalValuation: total, HoldingsCount: len(enriched)}, nil
}

// GetPortfolioAlignment computes the actual allocation split, looks up the
// persona target and scores the deviation between the two.
func (s *Service) GetPortfolioAlignment(ctx context.Context, userID uuid.UUID) (*Alignment, error) {
	enriched, _, err := s.GetHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	alignment := &Alignment{Actual: actualAllocation(enriched)}

	target, err := s.personas.GetIdealAllocation(ctx, userID)
	if err != nil {
		// No persona is a degraded read, not a failure.
		s.logger.Warn("persona lookup failed", "user_id", userID, "error", err)
		return alignment, nil
	}
	alignment.Persona = target.Persona
	alignment.Ideal = target.Ideal

	deviation := meanAbsDeviation(alignment.Actual, alignment.Ideal)
	score := clamp(100-deviation*s.policy.PenaltyPerPoint, 0, 100)
	score = roundTo(score, 1)
	alignment.Score = &score
	alignment.Flags = s.flags(deviation, alignment.Actual, alignment.Ideal)
	return alignment, nil
}

// ListTransactions returns the user's imported statement history, newest
// first.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error) {
	return s.transactions.ListByPortfolio(ctx, userID)
}

// actualAllocation splits total valuation across asset types, in percent
// rounded to one decimal. Holdings without a valuation contribute zero.
func actualAllocation(enriched []EnrichedHolding) provider.Allocation {
	equity, mutualFund := decimal.Zero, decimal.Zero
	for _, e := range enriched {
		if e.LastValuation == nil {
			continue
		}
		switch portfolio.AssetType(e.AssetType) {
		case portfolio.AssetTypeEquity:
			equity = equity.Add(*e.LastValuation)
		case portfolio.AssetTypeMutualFund:
			mutualFund = mutualFund.Add(*e.LastValuation)
		}
	}
	total := equity.Add(mutualFund)
	if total.IsZero() {
		return provider.Allocation{}
	}
	pct := func(part decimal.Decimal) float64 {
		p, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		return p
	}
	return provider.Allocation{Equity: pct(equity), MutualFund: pct(mutualFund)}
}

func (s *Service) flags(deviation float64, actual, ideal provider.Allocation) []AdvisoryFlag {
	if deviation <= s.policy.SuggestThreshold {
		return nil
	}
	flagType := "suggestion"
	if deviation > s.policy.WarnThreshold {
		flagType = "warning"
	}
	message := "Your portfolio is underweight equity relative to your persona target."
	if actual.Equity > ideal.Equity {
		message = "Your portfolio is overweight equity relative to your persona target."
	}
	return []AdvisoryFlag{{Type: flagType, Message: message}}
}

// meanAbsDeviation is the mean absolute difference between actual and ideal
// allocation percentages, in points.
func meanAbsDeviation(actual, ideal provider.Allocation) float64 {
	return (math.Abs(actual.Equity-ideal.Equity) + math.Abs(actual.MutualFund-ideal.MutualFund)) / 2
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
