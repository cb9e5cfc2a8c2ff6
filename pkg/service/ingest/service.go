// Package ingest merges imported holding candidates into the record store.
// Holdings carry replace semantics (a re-import overwrites the quantity for
// the same user, ISIN and source), statement transactions carry append-once
// semantics (exact duplicates are silently skipped).
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/arthamitra/arthamitra/pkg/dto"
	"github.com/arthamitra/arthamitra/pkg/importer"
	"github.com/arthamitra/arthamitra/pkg/importer/cas"
	"github.com/arthamitra/arthamitra/pkg/importer/csvimport"
	holdingrepo "github.com/arthamitra/arthamitra/pkg/repository/holding"
	transactionrepo "github.com/arthamitra/arthamitra/pkg/repository/transaction"
	"github.com/google/uuid"
)

// MergeResult is the outcome of reconciling one import batch.
type MergeResult struct {
	Inserted int                  `json:"inserted"`
	Updated  int                  `json:"updated"`
	Skipped  int                  `json:"skipped"`
	Errors   []importer.Rejection `json:"errors"`
}

// Imported is the number of holdings the batch landed in the store.
func (m *MergeResult) Imported() int { return m.Inserted + m.Updated }

// Service reconciles importer output into the holding and transaction
// stores.
type Service struct {
	holdings     holdingrepo.Repository
	transactions transactionrepo.Repository
	casImporter  *cas.Importer
	logger       *slog.Logger
}

// New creates the ingest service.
func New(
	holdings holdingrepo.Repository,
	transactions transactionrepo.Repository,
	casImporter *cas.Importer,
	logger *slog.Logger,
) *Service {
	return &Service{
		holdings:     holdings,
		transactions: transactions,
		casImporter:  casImporter,
		logger:       logger,
	}
}

// AddManualHolding validates and stores a single user-entered holding.
// Validation failures return typed domain errors and write nothing.
func (s *Service) AddManualHolding(
	ctx context.Context,
	userID uuid.UUID,
	rawISIN, rawAssetType, rawQuantity string,
) (*MergeResult, error) {
	result, err := importer.Manual(rawISIN, rawAssetType, rawQuantity)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, userID, result)
}

// ImportCSV parses a bulk CSV upload and reconciles every valid row.
// Malformed rows are reported in the merge result; only a missing header or
// a storage failure aborts the batch.
func (s *Service) ImportCSV(ctx context.Context, userID uuid.UUID, csvText string) (*MergeResult, error) {
	result, err := csvimport.Parse(csvText)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, userID, result)
}

// ImportCAS parses an uploaded consolidated account statement and reconciles
// the extracted holdings and transactions.
func (s *Service) ImportCAS(
	ctx context.Context,
	userID uuid.UUID,
	file io.ReaderAt,
	size int64,
	password string,
) (*MergeResult, error) {
	result, err := s.casImporter.Import(file, size, password)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, userID, result)
}

// DeleteHolding removes one holding owned by userID.
func (s *Service) DeleteHolding(ctx context.Context, userID, holdingID uuid.UUID) error {
	removed, err := s.holdings.Delete(ctx, userID, holdingID)
	if err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}
	if removed == 0 {
		return portfolio.ErrHoldingNotFound
	}
	return nil
}

// Reconcile merges an import result into the store. Each candidate is applied
// as one atomic insert-or-replace keyed on (user, ISIN, source), so a client
// disconnect can leave a prefix of the batch applied but never a torn row,
// and concurrent imports cannot interleave into a lost update. Statement
// transactions are appended once; exact duplicates count as skipped.
func (s *Service) Reconcile(ctx context.Context, userID uuid.UUID, result *importer.Result) (*MergeResult, error) {
	merge := &MergeResult{Errors: result.Rejections}

	for _, candidate := range result.Candidates {
		inserted, err := s.holdings.Upsert(ctx, dto.HoldingUpsert{
			ID:        uuid.New(),
			UserID:    userID,
			ISIN:      candidate.ISIN.String(),
			AssetType: string(candidate.AssetType),
			Quantity:  candidate.Quantity,
			Source:    string(result.Source),
		})
		if err != nil {
			return nil, fmt.Errorf("upsert holding %s: %w", candidate.ISIN, err)
		}
		if inserted {
			merge.Inserted++
		} else {
			merge.Updated++
		}
	}

	for _, txn := range result.Transactions {
		inserted, err := s.transactions.InsertIgnoreDuplicates(ctx, dto.TransactionCreate{
			ID:          uuid.New(),
			PortfolioID: userID,
			ISIN:        txn.ISIN.String(),
			Date:        txn.Date,
			Type:        string(txn.Type),
			Units:       txn.Units,
			Amount:      txn.Amount,
			Nav:         txn.Nav,
			Folio:       txn.Folio,
		})
		if err != nil {
			return nil, fmt.Errorf("insert transaction %s: %w", txn.ISIN, err)
		}
		if !inserted {
			merge.Skipped++
		}
	}

	s.logger.Info("import batch reconciled",
		"user_id", userID,
		"source", result.Source,
		"inserted", merge.Inserted,
		"updated", merge.Updated,
		"skipped", merge.Skipped,
		"rejected", len(merge.Errors),
	)
	return merge, nil
}
