// mkfixture creates a small representative claims fixture from a larger file.
// Two-pass: first buckets every cleaned row by trait, then selects the best N.
// Usage: go run ./cmd/mkfixture --in testdata/remittance.xlsx --out testdata/remittance-small.parquet --rows 200
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goparquet "github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimstats/internal/claims"
	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/tabular"
)

func main() {
	in := flag.String("in", "testdata/remittance.csv", "input claims file (csv, tsv, xlsx or parquet)")
	out := flag.String("out", "testdata/remittance-small.parquet", "output file (.parquet or .csv)")
	maxRows := flag.Int("rows", 200, "max rows to output")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	table, err := tabular.Open(*in, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	ds, err := claims.Prepare(zerolog.Nop(), table, model.HeaderMap(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "prepare: %v\n", err)
		os.Exit(1)
	}

	if *checkOnly {
		fmt.Printf("Total: %d, Kept: %d, Dropped: %d, Coerced: %d\n",
			ds.Report.RowsRead, ds.Report.RowsKept, ds.Report.RowsDropped, ds.Report.CellsCoerced)
		fmt.Printf("Years: %v\nPayers: %d\n", ds.Years, len(ds.Payers))
		return
	}

	// Pass 1: bucket by interesting traits. Every (year, payer) pair gets at
	// least one row so that filters stay meaningful on the small file.
	type bucket struct {
		name string
		rows []model.ClaimRecord
		want int
	}
	buckets := []*bucket{
		{name: "group", want: *maxRows},
		{name: "resubmitted", want: 20},
		{name: "denied", want: 20},
		{name: "general", want: *maxRows},
	}
	byName := make(map[string]*bucket, len(buckets))
	for _, b := range buckets {
		byName[b.name] = b
	}

	seen := make(map[string]bool)
	for _, rec := range ds.Records {
		key := fmt.Sprintf("%d|%s", rec.RemittanceYear, rec.PayerName)
		switch {
		case !seen[key] && len(byName["group"].rows) < byName["group"].want:
			seen[key] = true
			byName["group"].rows = append(byName["group"].rows, rec)
		case (!rec.ResubmittedAmount1.IsZero() || !rec.ResubmittedAmount2.IsZero()) &&
			len(byName["resubmitted"].rows) < byName["resubmitted"].want:
			byName["resubmitted"].rows = append(byName["resubmitted"].rows, rec)
		case rec.TotalDenied.IsPositive() && len(byName["denied"].rows) < byName["denied"].want:
			byName["denied"].rows = append(byName["denied"].rows, rec)
		case len(byName["general"].rows) < byName["general"].want:
			byName["general"].rows = append(byName["general"].rows, rec)
		}
	}
	fmt.Printf("Scanned %d rows (%d kept after cleaning)\n", ds.Report.RowsRead, ds.Report.RowsKept)

	// Merge buckets in priority order
	var selected []model.ClaimRecord
	for _, b := range buckets {
		for _, rec := range b.rows {
			if len(selected) >= *maxRows {
				break
			}
			selected = append(selected, rec)
		}
	}

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".csv":
		err = writeCSV(*out, selected)
	default:
		err = writeParquet(*out, selected)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(selected), *out)
	fmt.Println("Bucket distribution:")
	for _, b := range buckets {
		fmt.Printf("  %-12s %d\n", b.name, len(b.rows))
	}
}

func writeParquet(path string, records []model.ClaimRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	rows := make([]model.ClaimParquetRow, len(records))
	for i := range records {
		rows[i] = records[i].ToParquetRow()
	}
	writer := goparquet.NewGenericWriter[model.ClaimParquetRow](f)
	if _, err := writer.Write(rows); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return f.Close()
}

// writeCSV writes the input columns only; derived columns are recomputed on read.
func writeCSV(path string, records []model.ClaimRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	inputCols := len(model.AllFields)
	w := csv.NewWriter(f)
	if err := w.Write(model.ClaimColumns()[:inputCols]); err != nil {
		return err
	}
	for i := range records {
		if err := w.Write(records[i].Values()[:inputCols]); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
