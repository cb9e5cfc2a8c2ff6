package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate is a DTO for appending a statement transaction.
type TransactionCreate struct {
	ID          uuid.UUID
	PortfolioID uuid.UUID
	ISIN        string
	Date        time.Time
	Type        string
	Units       decimal.Decimal
	Amount      decimal.Decimal
	Nav         decimal.Decimal
	Folio       string
}

// TransactionRead is a read-optimized DTO for statement history queries.
type TransactionRead struct {
	ID          uuid.UUID
	PortfolioID uuid.UUID
	ISIN        string
	Date        time.Time
	Type        string
	Units       decimal.Decimal
	Amount      decimal.Decimal
	Nav         decimal.Decimal
	Folio       string
	CreatedAt   time.Time
}
