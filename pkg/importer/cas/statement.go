package cas

import (
	"time"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/shopspring/decimal"
)

// StatementHolding is one per-folio holding block found in statement text.
// ISIN may be empty when the statement only carries the scheme name; the
// importer resolves it through the scheme-name lookup collaborator.
type StatementHolding struct {
	Folio      string
	SchemeName string
	ISIN       string
	Units      decimal.Decimal
	Nav        decimal.Decimal
}

// StatementTransaction is one historical transaction line item.
type StatementTransaction struct {
	Folio      string
	SchemeName string
	ISIN       string
	Date       time.Time
	Type       portfolio.TransactionType
	Units      decimal.Decimal
	Amount     decimal.Decimal
	Nav        decimal.Decimal
}

// ParsedStatement is the stable output shape of a statement layout parser.
// New registrar layouts plug in behind this type without touching
// reconciliation.
type ParsedStatement struct {
	Holdings     []StatementHolding
	Transactions []StatementTransaction
	Warnings     []string
}

// LayoutParser is a best-effort structured extractor for one family of
// statement text layouts.
type LayoutParser interface {
	Name() string
	Parse(text string) (*ParsedStatement, error)
}
