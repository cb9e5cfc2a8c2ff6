// Package cas imports holdings and historical transactions from CAMS/KFintech
// consolidated account statement PDFs, optionally password-protected.
package cas

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/arthamitra/arthamitra/pkg/importer"
	"github.com/arthamitra/arthamitra/pkg/provider"
	"github.com/shopspring/decimal"
)

// Importer extracts statement text from a PDF, runs the configured layout
// parsers over it and maps the best-effort results into the common import
// contract. Scheme names without an inline ISIN are resolved through the
// scheme-name lookup collaborator.
type Importer struct {
	resolver provider.SchemeResolver
	parsers  []LayoutParser
	logger   *slog.Logger
}

// NewImporter builds a CAS importer. When no layout parsers are supplied the
// default CAMS/KFintech layout is used.
func NewImporter(resolver provider.SchemeResolver, logger *slog.Logger, parsers ...LayoutParser) *Importer {
	if len(parsers) == 0 {
		parsers = []LayoutParser{NewRegistrarLayout()}
	}
	return &Importer{resolver: resolver, parsers: parsers, logger: logger}
}

// Import parses one uploaded statement. A wrong password fails with
// ErrDecryptionFailed and a non-PDF upload with ErrUnsupportedFileType.
// An unrecognized layout returns ErrParseFailed together with whatever
// partial results were extracted.
func (i *Importer) Import(file io.ReaderAt, size int64, password string) (*importer.Result, error) {
	head := make([]byte, len(pdfMagic))
	if _, err := file.ReadAt(head, 0); err != nil || !SniffPDF(head) {
		return nil, portfolio.ErrUnsupportedFileType
	}

	text, err := ExtractText(file, size, password)
	if err != nil {
		return nil, err
	}

	statement := i.parseWithFallback(text)
	result := i.mapStatement(statement)
	if len(result.Candidates) == 0 && len(result.Transactions) == 0 {
		return result, portfolio.ErrParseFailed
	}
	return result, nil
}

// parseWithFallback tries each layout in order and keeps the first that
// recognizes the document. Layouts that fail outright contribute nothing.
func (i *Importer) parseWithFallback(text string) *ParsedStatement {
	for _, parser := range i.parsers {
		statement, err := parser.Parse(text)
		if err != nil {
			i.logger.Debug("statement layout not recognized",
				"layout", parser.Name(), "error", err)
			continue
		}
		for _, warning := range statement.Warnings {
			i.logger.Warn("statement parse warning", "layout", parser.Name(), "warning", warning)
		}
		return statement
	}
	return &ParsedStatement{}
}

// mapStatement converts parsed statement records into the common import
// contract, tagged with the CAS source. Units for the same ISIN across
// folios are summed into a single candidate so the store keeps one row per
// (user, ISIN, CAS).
func (i *Importer) mapStatement(statement *ParsedStatement) *importer.Result {
	result := &importer.Result{Source: portfolio.SourceCAS}

	totals := make(map[portfolio.ISIN]decimal.Decimal)
	var order []portfolio.ISIN
	for idx, h := range statement.Holdings {
		isin, reason := i.resolveISIN(h.ISIN, h.SchemeName)
		if reason != "" {
			result.Rejections = append(result.Rejections, importer.Rejection{Row: idx + 1, Reason: reason})
			continue
		}
		if _, seen := totals[isin]; !seen {
			order = append(order, isin)
		}
		totals[isin] = totals[isin].Add(h.Units)
	}
	for _, isin := range order {
		units := totals[isin]
		if err := portfolio.ValidateQuantity(units); err != nil {
			result.Rejections = append(result.Rejections, importer.Rejection{
				Row:    0,
				Reason: fmt.Sprintf("%v for %s", err, isin),
			})
			continue
		}
		result.Candidates = append(result.Candidates, importer.Candidate{
			ISIN:      isin,
			AssetType: portfolio.AssetTypeMutualFund,
			Quantity:  units,
		})
	}

	for idx, t := range statement.Transactions {
		isin, reason := i.resolveISIN(t.ISIN, t.SchemeName)
		if reason != "" {
			result.Rejections = append(result.Rejections, importer.Rejection{Row: idx + 1, Reason: reason})
			continue
		}
		result.Transactions = append(result.Transactions, importer.ParsedTransaction{
			ISIN:   isin,
			Date:   t.Date,
			Type:   t.Type,
			Units:  t.Units,
			Amount: t.Amount,
			Nav:    t.Nav,
			Folio:  t.Folio,
		})
	}
	return result
}

func (i *Importer) resolveISIN(inline, schemeName string) (portfolio.ISIN, string) {
	raw := inline
	if raw == "" {
		resolved, ok := i.resolver.ResolveISIN(schemeName)
		if !ok {
			return "", fmt.Sprintf("unknown scheme: %q", schemeName)
		}
		raw = resolved
	}
	isin, err := portfolio.NormalizeISIN(raw)
	if err != nil {
		return "", fmt.Sprintf("%v: %q", err, raw)
	}
	return isin, ""
}
