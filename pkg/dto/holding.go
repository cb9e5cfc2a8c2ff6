package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HoldingUpsert is a DTO for inserting a holding or replacing the quantity of
// an existing (user, ISIN, source) row.
type HoldingUpsert struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ISIN      string
	AssetType string
	Quantity  decimal.Decimal
	Source    string
}

// HoldingRead is a read-optimized DTO for holding queries and API responses.
type HoldingRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ISIN      string
	AssetType string
	Quantity  decimal.Decimal
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
