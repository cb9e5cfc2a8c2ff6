// casinspect parses a consolidated account statement PDF locally and prints
// the holdings and transactions it finds. Useful for debugging registrar
// layout changes without going through the API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/arthamitra/arthamitra/infra/provider/schememaster"
	"github.com/arthamitra/arthamitra/pkg/importer/cas"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: casinspect <statement.pdf> [--password]")
		os.Exit(2)
	}
	path := os.Args[1]

	password := ""
	if len(os.Args) > 2 && os.Args[2] == "--password" {
		fmt.Print("Statement password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			color.Red("failed to read password: %v", err)
			os.Exit(1)
		}
		password = string(raw)
	}

	f, err := os.Open(path)
	if err != nil {
		color.Red("failed to open statement: %v", err)
		os.Exit(1)
	}
	defer f.Close() //nolint:errcheck
	info, err := f.Stat()
	if err != nil {
		color.Red("failed to stat statement: %v", err)
		os.Exit(1)
	}

	schemes, err := schememaster.Load("")
	if err != nil {
		color.Red("failed to load scheme master: %v", err)
		os.Exit(1)
	}

	importer := cas.NewImporter(schemes, slog.Default())
	result, err := importer.Import(f, info.Size(), password)
	if err != nil {
		color.Red("import failed: %v", err)
		if result == nil {
			os.Exit(1)
		}
	}

	color.Green("holdings: %d", len(result.Candidates))
	for _, c := range result.Candidates {
		fmt.Printf("  %-14s %-12s %s\n", c.ISIN, c.AssetType, c.Quantity)
	}
	color.Green("transactions: %d", len(result.Transactions))
	for _, t := range result.Transactions {
		fmt.Printf("  %s  %-12s %-11s units=%s amount=%s nav=%s\n",
			t.Date.Format("2006-01-02"), t.ISIN, t.Type, t.Units, t.Amount, t.Nav)
	}
	if len(result.Rejections) > 0 {
		color.Yellow("rejections: %d", len(result.Rejections))
		for _, r := range result.Rejections {
			fmt.Printf("  row %d: %s\n", r.Row, r.Reason)
		}
	}
}
