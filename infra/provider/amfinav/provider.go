// Package amfinav implements the price-lookup collaborator against an
// AMFI-style NAV quote service, with an in-memory TTL cache in front of the
// HTTP calls.
package amfinav

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/arthamitra/arthamitra/pkg/config"
	"github.com/arthamitra/arthamitra/pkg/provider"
	"github.com/shopspring/decimal"
)

// Provider fetches current NAVs over HTTP and caches them per ISIN.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	cacheTTL   time.Duration
	logger     *slog.Logger

	mu    sync.RWMutex
	cache map[string]cachedQuote
}

type cachedQuote struct {
	quote     provider.Quote
	expiresAt time.Time
}

// quoteResponse is the wire shape of the NAV quote endpoint:
// GET {base}/quotes/{isin}
type quoteResponse struct {
	ISIN  string          `json:"isin"`
	Nav   decimal.Decimal `json:"nav"`
	AsOf  time.Time       `json:"as_of"`
	Error string          `json:"error,omitempty"`
}

// New creates an AMFI NAV provider from config.
func New(cfg config.Nav, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.ApiUrl,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cacheTTL:   cfg.CacheTTL,
		logger:     logger,
		cache:      make(map[string]cachedQuote),
	}
}

// GetCurrentPrice implements provider.PriceProvider. A 404 from the quote
// service maps to ErrPriceNotFound so valuation can degrade per holding.
func (p *Provider) GetCurrentPrice(ctx context.Context, isin string) (*provider.Quote, error) {
	if quote, ok := p.cached(isin); ok {
		return quote, nil
	}

	url := fmt.Sprintf("%s/quotes/%s", p.baseURL, isin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create quote request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, provider.ErrPriceNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("quote service returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("quote service error: %s", decoded.Error)
	}

	quote := provider.Quote{
		ISIN:     isin,
		Nav:      decoded.Nav,
		AsOf:     decoded.AsOf,
		Provider: "amfinav",
	}
	p.store(isin, quote)
	return &quote, nil
}

func (p *Provider) cached(isin string) (*provider.Quote, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.cache[isin]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	quote := entry.quote
	return &quote, true
}

func (p *Provider) store(isin string, quote provider.Quote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[isin] = cachedQuote{quote: quote, expiresAt: time.Now().Add(p.cacheTTL)}
}

var _ provider.PriceProvider = (*Provider)(nil)
