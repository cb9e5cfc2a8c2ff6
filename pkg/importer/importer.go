// Package importer defines the common output contract shared by the manual,
// CSV and CAS import sources: an ordered list of candidate holdings plus a
// per-record outcome. Import is partial-failure tolerant; one malformed
// record never aborts a batch.
package importer

import (
	"time"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/shopspring/decimal"
)

// Candidate is a normalized holding record ready for reconciliation.
type Candidate struct {
	ISIN      portfolio.ISIN
	AssetType portfolio.AssetType
	Quantity  decimal.Decimal
}

// Rejection records one input record that failed validation, with a
// human-readable reason. Row is the 1-based line or record number in the
// source document.
type Rejection struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParsedTransaction is a statement transaction extracted by the CAS importer.
type ParsedTransaction struct {
	ISIN   portfolio.ISIN
	Date   time.Time
	Type   portfolio.TransactionType
	Units  decimal.Decimal
	Amount decimal.Decimal
	Nav    decimal.Decimal
	Folio  string
}

// Result is the outcome of one import run from a single source.
type Result struct {
	Source       portfolio.Source
	Candidates   []Candidate
	Transactions []ParsedTransaction
	Rejections   []Rejection
}

// Manual validates a single user-entered record and wraps it in the common
// import contract, tagged with the MANUAL source. Unlike the batch sources a
// manual import is all-or-nothing, so validation failures surface as typed
// domain errors and no result is produced.
func Manual(rawISIN, rawAssetType, rawQuantity string) (*Result, error) {
	isin, err := portfolio.NormalizeISIN(rawISIN)
	if err != nil {
		return nil, err
	}
	assetType, err := portfolio.ParseAssetType(rawAssetType)
	if err != nil {
		return nil, err
	}
	quantity, err := portfolio.ParseQuantity(rawQuantity)
	if err != nil {
		return nil, err
	}

	return &Result{
		Source: portfolio.SourceManual,
		Candidates: []Candidate{{
			ISIN:      isin,
			AssetType: assetType,
			Quantity:  quantity,
		}},
	}, nil
}
