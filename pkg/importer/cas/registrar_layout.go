package cas

import (
	"regexp"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/shopspring/decimal"
)

// registrarLayout handles the line-oriented text layout produced by
// CAMS/KFintech consolidated statements after PDF text extraction: a
// "Folio No" marker opens each block, followed by a scheme header, the
// scheme's transaction lines and a closing unit balance line.
type registrarLayout struct{}

// NewRegistrarLayout returns the default CAMS/KFintech layout parser.
func NewRegistrarLayout() LayoutParser { return &registrarLayout{} }

func (registrarLayout) Name() string { return "cams-kfintech" }

const statementDateLayout = "02-Jan-2006"

var (
	folioRe   = regexp.MustCompile(`(?i)^folio\s*no\.?\s*:\s*(\S.*)$`)
	isinRe    = regexp.MustCompile(`ISIN\s*:?\s*([A-Z]{2}[A-Z0-9]{9}[0-9])`)
	closingRe = regexp.MustCompile(`(?i)closing\s+unit\s+balance\s*:?\s*(-?[0-9,]+(?:\.[0-9]+)?)`)
	navAsOnRe = regexp.MustCompile(`(?i)nav\s+on\s+\d{1,2}-[A-Za-z]{3}-\d{4}\s*:?\s*([0-9,]+(?:\.[0-9]+)?)`)
	txnRe     = regexp.MustCompile(`^(\d{1,2}-[A-Za-z]{3}-\d{4})\s+(.+?)\s+(-?[0-9,]+\.\d{2})\s+(-?[0-9,]+\.\d{2,4})\s+([0-9,]+\.\d{2,4})\s*$`)
	schemeRe  = regexp.MustCompile(`(?i)^[A-Za-z].*(fund|plan|growth|idcw|dividend)`)
)

func (registrarLayout) Parse(text string) (*ParsedStatement, error) {
	parsed := &ParsedStatement{}

	var folio, scheme, isin string
	sawFolio := false

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if m := folioRe.FindStringSubmatch(line); m != nil {
			folio = strings.TrimSpace(m[1])
			scheme, isin = "", ""
			sawFolio = true
			continue
		}

		if m := txnRe.FindStringSubmatch(line); m != nil {
			txn, warn := parseTransactionLine(m, folio, scheme, isin)
			if warn != "" {
				parsed.Warnings = append(parsed.Warnings, warn)
			}
			if txn != nil {
				parsed.Transactions = append(parsed.Transactions, *txn)
			}
			continue
		}

		if m := closingRe.FindStringSubmatch(line); m != nil {
			units, err := parseStatementNumber(m[1])
			if err != nil {
				parsed.Warnings = append(parsed.Warnings, "unreadable closing balance: "+line)
				continue
			}
			nav := decimal.Zero
			if nm := navAsOnRe.FindStringSubmatch(line); nm != nil {
				if parsedNav, err := parseStatementNumber(nm[1]); err == nil {
					nav = parsedNav
				}
			}
			parsed.Holdings = append(parsed.Holdings, StatementHolding{
				Folio:      folio,
				SchemeName: scheme,
				ISIN:       isin,
				Units:      units,
				Nav:        nav,
			})
			continue
		}

		if schemeRe.MatchString(line) {
			scheme = line
			isin = ""
			if m := isinRe.FindStringSubmatch(line); m != nil {
				isin = m[1]
			}
			continue
		}

		// A bare ISIN line directly under the scheme header.
		if m := isinRe.FindStringSubmatch(line); m != nil {
			isin = m[1]
		}
	}

	if !sawFolio {
		return nil, portfolio.ErrParseFailed
	}
	return parsed, nil
}

func parseTransactionLine(m []string, folio, scheme, isin string) (*StatementTransaction, string) {
	date, err := time.Parse(statementDateLayout, m[1])
	if err != nil {
		return nil, "unreadable transaction date: " + m[1]
	}
	amount, err := parseStatementNumber(m[3])
	if err != nil {
		return nil, "unreadable transaction amount: " + m[3]
	}
	units, err := parseStatementNumber(m[4])
	if err != nil {
		return nil, "unreadable transaction units: " + m[4]
	}
	nav, err := parseStatementNumber(m[5])
	if err != nil {
		return nil, "unreadable transaction nav: " + m[5]
	}

	description := m[2]
	txnType, warn := classifyTransaction(description, units)
	return &StatementTransaction{
		Folio:      folio,
		SchemeName: scheme,
		ISIN:       isin,
		Date:       date,
		Type:       txnType,
		Units:      units,
		Amount:     amount,
		Nav:        nav,
	}, warn
}

// classifyTransaction maps a statement description to a transaction type.
// Unrecognized descriptions fall back on the sign of the units and are
// surfaced as a warning.
func classifyTransaction(description string, units decimal.Decimal) (portfolio.TransactionType, string) {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "sip"):
		return portfolio.TxnSIP, ""
	case strings.Contains(desc, "switch") && strings.Contains(desc, "out"):
		return portfolio.TxnSwitchOut, ""
	case strings.Contains(desc, "switch"):
		return portfolio.TxnSwitchIn, ""
	case strings.Contains(desc, "redemption"):
		return portfolio.TxnRedemption, ""
	case strings.Contains(desc, "dividend"), strings.Contains(desc, "idcw"):
		return portfolio.TxnDividend, ""
	case strings.Contains(desc, "purchase"), strings.Contains(desc, "subscription"):
		return portfolio.TxnBuy, ""
	case strings.Contains(desc, "sale"), strings.Contains(desc, "sell"):
		return portfolio.TxnSell, ""
	}
	if units.IsNegative() {
		return portfolio.TxnSell, "unrecognized transaction description: " + description
	}
	return portfolio.TxnBuy, "unrecognized transaction description: " + description
}

func parseStatementNumber(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
}
