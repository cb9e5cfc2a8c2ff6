// Package schememaster implements the fund-name-to-ISIN lookup used by the
// CAS importer. The master list ships embedded and can be overridden with a
// registrar export file.
package schememaster

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthamitra/arthamitra/pkg/provider"
)

//go:embed master.csv
var masterCSV string

// Resolver maps normalized scheme names to ISINs.
type Resolver struct {
	byName map[string]string
}

// Load builds a resolver from a scheme master CSV at path, or from the
// embedded master list when path is empty.
func Load(path string) (*Resolver, error) {
	var r io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open scheme master: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	} else {
		r = strings.NewReader(masterCSV)
	}
	return parse(r)
}

func parse(r io.Reader) (*Resolver, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read scheme master: %w", err)
	}
	byName := make(map[string]string, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue // header or malformed row
		}
		byName[normalizeName(rec[0])] = strings.TrimSpace(rec[1])
	}
	return &Resolver{byName: byName}, nil
}

// ResolveISIN implements provider.SchemeResolver. Matching is
// case-insensitive with whitespace collapsed, since statement text rarely
// preserves exact spacing.
func (r *Resolver) ResolveISIN(schemeName string) (string, bool) {
	isin, ok := r.byName[normalizeName(schemeName)]
	return isin, ok
}

// Size is the number of schemes loaded.
func (r *Resolver) Size() int { return len(r.byName) }

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

var _ provider.SchemeResolver = (*Resolver)(nil)
