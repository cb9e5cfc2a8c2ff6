package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of statement line item a CAS import produces.
type TransactionType string

const (
	TxnBuy        TransactionType = "BUY"
	TxnSell       TransactionType = "SELL"
	TxnSIP        TransactionType = "SIP"
	TxnSwitchIn   TransactionType = "SWITCH_IN"
	TxnSwitchOut  TransactionType = "SWITCH_OUT"
	TxnDividend   TransactionType = "DIVIDEND"
	TxnRedemption TransactionType = "REDEMPTION"
)

// ParseTransactionType validates a raw transaction type tag.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TxnBuy:
		return TxnBuy, nil
	case TxnSell:
		return TxnSell, nil
	case TxnSIP:
		return TxnSIP, nil
	case TxnSwitchIn:
		return TxnSwitchIn, nil
	case TxnSwitchOut:
		return TxnSwitchOut, nil
	case TxnDividend:
		return TxnDividend, nil
	case TxnRedemption:
		return TxnRedemption, nil
	default:
		return "", ErrInvalidTransactionType
	}
}

// Transaction is an immutable historical statement record, produced only by
// CAS imports. Exact duplicates keyed on (portfolio, ISIN, date, type, units,
// amount) are skipped on re-upload, never re-inserted.
type Transaction struct {
	ID          uuid.UUID
	PortfolioID uuid.UUID
	ISIN        ISIN
	Date        time.Time
	Type        TransactionType
	Units       decimal.Decimal
	Amount      decimal.Decimal
	Nav         decimal.Decimal
	Folio       string
	CreatedAt   time.Time
}
