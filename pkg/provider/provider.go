// Package provider defines the interfaces of the external collaborators this
// subsystem consumes: price/NAV lookup, persona target allocation and
// scheme-name resolution. Implementations live in infra/provider.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrPriceNotFound is returned when no current price is available for an
	// ISIN. Valuation degrades gracefully on this error.
	ErrPriceNotFound = errors.New("price not found")

	// ErrPersonaNotFound is returned when a user has no assigned persona.
	ErrPersonaNotFound = errors.New("persona not found")
)

// Quote is a point-in-time price for one instrument.
type Quote struct {
	ISIN     string
	Nav      decimal.Decimal
	AsOf     time.Time
	Provider string
}

// PriceProvider looks up the current NAV/market price for an instrument.
type PriceProvider interface {
	GetCurrentPrice(ctx context.Context, isin string) (*Quote, error)
}

// Allocation is a percentage split of a portfolio across asset types.
// Fields are percentages in [0, 100].
type Allocation struct {
	Equity     float64 `json:"equity"`
	MutualFund float64 `json:"mutualFund"`
}

// PersonaTarget is a user's assigned persona together with the ideal
// allocation that persona prescribes.
type PersonaTarget struct {
	Persona string
	Ideal   Allocation
}

// PersonaProvider resolves the ideal allocation for a user from their
// assigned financial persona.
type PersonaProvider interface {
	GetIdealAllocation(ctx context.Context, userID uuid.UUID) (*PersonaTarget, error)
}

// SchemeResolver maps a fund/scheme name found in statement text to an ISIN.
// Used only by the CAS importer.
type SchemeResolver interface {
	ResolveISIN(schemeName string) (string, bool)
}
