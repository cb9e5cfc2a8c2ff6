package transaction

import (
	"context"

	"github.com/arthamitra/arthamitra/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for the append-only statement transaction
// history. Transactions are never updated or deleted by this subsystem.
type Repository interface {
	// InsertIgnoreDuplicates appends a transaction unless an exact duplicate
	// (portfolio, ISIN, date, type, units, amount) already exists. Returns
	// true when a row was inserted and false when the duplicate was skipped.
	InsertIgnoreDuplicates(ctx context.Context, create dto.TransactionCreate) (inserted bool, err error)

	// ListByPortfolio lists all transactions for a portfolio, newest first.
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*dto.TransactionRead, error)
}
