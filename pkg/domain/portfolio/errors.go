package portfolio

import "errors"

var (
	// ErrInvalidISINFormat is returned when an instrument identifier does not
	// match the 12-character ISIN structure.
	ErrInvalidISINFormat = errors.New("invalid ISIN format")

	// ErrInvalidAssetType is returned when an asset type is not one of the
	// recognized enum values.
	ErrInvalidAssetType = errors.New("invalid asset type")

	// ErrInvalidQuantity is returned when a quantity is zero, negative,
	// non-numeric or below the supported precision.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidTransactionType is returned for an unrecognized statement
	// transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrHoldingNotFound is returned when a holding cannot be found for the
	// requesting user.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrDecryptionFailed is returned when a statement PDF cannot be opened
	// with the supplied password.
	ErrDecryptionFailed = errors.New("statement decryption failed")

	// ErrParseFailed is returned when a statement layout is not recognized.
	// Callers may still receive partial results alongside this error.
	ErrParseFailed = errors.New("statement parse failed")

	// ErrUnsupportedFileType is returned when an uploaded file is not a PDF.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
