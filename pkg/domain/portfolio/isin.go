package portfolio

import (
	"regexp"
	"strings"
)

// ISIN is a normalized International Securities Identification Number:
// two alphabetic characters, nine alphanumerics and one numeric check digit.
// Validation is purely structural; no checksum is verified. Whether the
// instrument actually exists is established later by the price lookup.
type ISIN string

var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// NormalizeISIN strips whitespace, uppercases the input and validates it
// against the structural ISIN pattern.
func NormalizeISIN(raw string) (ISIN, error) {
	candidate := strings.ToUpper(strings.TrimSpace(raw))
	if !isinPattern.MatchString(candidate) {
		return "", ErrInvalidISINFormat
	}
	return ISIN(candidate), nil
}

func (i ISIN) String() string { return string(i) }
