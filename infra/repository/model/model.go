// Package model holds the gorm persistence models for the portfolio store.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is the persisted holding row. The composite unique index enforces
// at most one row per (user, ISIN, source); the same ISIN from different
// sources stays as separate line items to preserve provenance.
type Holding struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_holdings_user_isin_source;index"`
	ISIN      string          `gorm:"type:varchar(12);not null;uniqueIndex:idx_holdings_user_isin_source"`
	AssetType string          `gorm:"type:varchar(16);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Source    string          `gorm:"type:varchar(8);not null;default:'MANUAL';uniqueIndex:idx_holdings_user_isin_source"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is the persisted statement transaction row. The composite
// unique index implements the append-once semantics: re-uploading the same
// statement inserts nothing new.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	PortfolioID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_txn_dedup;index"`
	ISIN        string          `gorm:"type:varchar(12);not null;uniqueIndex:idx_txn_dedup"`
	Date        time.Time       `gorm:"not null;uniqueIndex:idx_txn_dedup"`
	Type        string          `gorm:"type:varchar(16);not null;uniqueIndex:idx_txn_dedup"`
	Units       decimal.Decimal `gorm:"type:decimal(20,4);not null;uniqueIndex:idx_txn_dedup"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null;uniqueIndex:idx_txn_dedup"`
	Nav         decimal.Decimal `gorm:"type:decimal(20,4)"`
	Folio       string          `gorm:"type:varchar(32)"`
	CreatedAt   time.Time
}
