// Package mocknav is a function-field mock of the price-lookup collaborator,
// used in tests and as the development fallback when no NAV service is
// configured.
package mocknav

import (
	"context"
	"time"

	"github.com/arthamitra/arthamitra/pkg/provider"
	"github.com/shopspring/decimal"
)

// Provider delegates to its function fields so tests can script responses.
type Provider struct {
	GetCurrentPriceFunc func(ctx context.Context, isin string) (*provider.Quote, error)
}

// New returns a mock that prices every instrument at 100.
func New() *Provider {
	return &Provider{
		GetCurrentPriceFunc: func(ctx context.Context, isin string) (*provider.Quote, error) {
			return &provider.Quote{
				ISIN:     isin,
				Nav:      decimal.NewFromInt(100),
				AsOf:     time.Now(),
				Provider: "mock",
			}, nil
		},
	}
}

// GetCurrentPrice implements provider.PriceProvider.
func (p *Provider) GetCurrentPrice(ctx context.Context, isin string) (*provider.Quote, error) {
	return p.GetCurrentPriceFunc(ctx, isin)
}

var _ provider.PriceProvider = (*Provider)(nil)
