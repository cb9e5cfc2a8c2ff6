package holding

import "encoding/json"

// AddHoldingRequest is the request body for a manual holding entry.
// Quantity arrives as a JSON number or string and is validated by the
// domain, which owns the precision rules.
type AddHoldingRequest struct {
	ISIN      string      `json:"isin" validate:"required"`
	AssetType string      `json:"assetType" validate:"required"`
	Quantity  json.Number `json:"quantity" validate:"required"`
}

// ImportSummaryResponse is the response data for batch imports.
type ImportSummaryResponse struct {
	Imported int `json:"imported"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped,omitempty"`
	Errors   any `json:"errors"`
}
