package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType classifies a holding. Only listed equity and mutual fund units
// are supported.
type AssetType string

const (
	AssetTypeEquity     AssetType = "EQUITY"
	AssetTypeMutualFund AssetType = "MUTUAL_FUND"
)

// ParseAssetType validates a raw asset type tag. Input is matched
// case-insensitively and returned in its canonical uppercase form.
func ParseAssetType(raw string) (AssetType, error) {
	switch AssetType(strings.ToUpper(strings.TrimSpace(raw))) {
	case AssetTypeEquity:
		return AssetTypeEquity, nil
	case AssetTypeMutualFund:
		return AssetTypeMutualFund, nil
	default:
		return "", ErrInvalidAssetType
	}
}

// Source records the provenance of a holding. The same ISIN may appear once
// per source for a user; rows from different sources are deliberately kept as
// separate line items rather than deduplicated.
type Source string

const (
	SourceManual Source = "MANUAL"
	SourceCSV    Source = "CSV"
	SourceCAS    Source = "CAS"
	SourcePAN    Source = "PAN"
)

// minQuantity is the smallest unit count the store distinguishes.
var minQuantity = decimal.RequireFromString("0.0001")

// ParseQuantity parses a raw quantity string into a positive decimal.
// Zero, negative, non-numeric and sub-precision values are rejected.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	q, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidQuantity
	}
	if err := ValidateQuantity(q); err != nil {
		return decimal.Zero, err
	}
	return q, nil
}

// ValidateQuantity enforces the positivity and precision invariants on an
// already-parsed quantity.
func ValidateQuantity(q decimal.Decimal) error {
	if q.LessThan(minQuantity) {
		return ErrInvalidQuantity
	}
	return nil
}

// Holding is one row per (user, ISIN, source). Quantity is the current-state
// snapshot for that source; re-imports replace it rather than add to it.
// Valuation fields are derived at read time and never persisted here.
type Holding struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ISIN      ISIN
	AssetType AssetType
	Quantity  decimal.Decimal
	Source    Source
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewHolding validates and constructs a holding owned by userID. An empty
// source defaults to MANUAL.
func NewHolding(
	userID uuid.UUID,
	rawISIN, rawAssetType string,
	quantity decimal.Decimal,
	source Source,
) (*Holding, error) {
	isin, err := NormalizeISIN(rawISIN)
	if err != nil {
		return nil, err
	}
	assetType, err := ParseAssetType(rawAssetType)
	if err != nil {
		return nil, err
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if source == "" {
		source = SourceManual
	}
	now := time.Now()
	return &Holding{
		ID:        uuid.New(),
		UserID:    userID,
		ISIN:      isin,
		AssetType: assetType,
		Quantity:  quantity,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
