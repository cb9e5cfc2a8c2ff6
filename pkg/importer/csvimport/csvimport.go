// Package csvimport parses bulk holding uploads. The input is raw CSV text
// with a mandatory header naming the isin, asset_type and quantity columns;
// header matching is case-insensitive and order-independent. Rows are parsed
// independently so a malformed row is reported and skipped, never fatal.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/arthamitra/arthamitra/pkg/importer"
)

// ErrMissingHeader is returned when the header row is absent or lacks one of
// the required columns. This aborts the batch; nothing else does.
var ErrMissingHeader = errors.New("csv header must contain isin, asset_type and quantity columns")

const (
	colISIN      = "isin"
	colAssetType = "asset_type"
	colQuantity  = "quantity"
)

// Parse reads the whole CSV document and returns the common import result
// tagged with the CSV source. Row numbers in rejections are 1-based file
// lines, counting the header as line 1.
func Parse(csvText string) (*importer.Result, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.TrimLeadingSpace = true
	// Rows with a wrong field count are reported per-row, not as a global
	// parse failure.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, ErrMissingHeader
	}
	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	result := &importer.Result{Source: portfolio.SourceCSV}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Rejections = append(result.Rejections, importer.Rejection{
				Row:    line,
				Reason: fmt.Sprintf("unreadable row: %v", err),
			})
			continue
		}
		candidate, reason := parseRow(record, columns)
		if reason != "" {
			result.Rejections = append(result.Rejections, importer.Rejection{Row: line, Reason: reason})
			continue
		}
		result.Candidates = append(result.Candidates, *candidate)
	}
	return result, nil
}

// mapHeader resolves the index of each required column, case-insensitively.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colISIN, colAssetType, colQuantity} {
		if _, ok := columns[required]; !ok {
			return nil, ErrMissingHeader
		}
	}
	return columns, nil
}

func parseRow(record []string, columns map[string]int) (*importer.Candidate, string) {
	field := func(name string) (string, bool) {
		idx := columns[name]
		if idx >= len(record) {
			return "", false
		}
		return record[idx], true
	}

	rawISIN, ok := field(colISIN)
	if !ok {
		return nil, "missing isin field"
	}
	rawAssetType, ok := field(colAssetType)
	if !ok {
		return nil, "missing asset_type field"
	}
	rawQuantity, ok := field(colQuantity)
	if !ok {
		return nil, "missing quantity field"
	}

	isin, err := portfolio.NormalizeISIN(rawISIN)
	if err != nil {
		return nil, fmt.Sprintf("%v: %q", err, rawISIN)
	}
	assetType, err := portfolio.ParseAssetType(rawAssetType)
	if err != nil {
		return nil, fmt.Sprintf("%v: %q", err, rawAssetType)
	}
	quantity, err := portfolio.ParseQuantity(rawQuantity)
	if err != nil {
		return nil, fmt.Sprintf("%v: %q", err, rawQuantity)
	}

	return &importer.Candidate{ISIN: isin, AssetType: assetType, Quantity: quantity}, ""
}
