package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the on-disk layout of an input file.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// DetectFormat maps a file name's extension to a Format.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".txt":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".parquet":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("unsupported file type %q (want .csv, .tsv, .xlsx or .parquet)", filepath.Ext(name))
}

// ParseFormat validates an explicit --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatTSV, FormatXLSX, FormatParquet:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Table is a raw, untyped dataset: trimmed column headers plus string cells.
// Rows may be shorter than Header; missing trailing cells read as "".
type Table struct {
	Format Format
	Header []string
	Rows   [][]string
}

// Index returns the column index of header, or -1.
func (t *Table) Index(header string) int {
	for i, h := range t.Header {
		if h == header {
			return i
		}
	}
	return -1
}

// Cell returns row[col], or "" when col is negative or past the row's end.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
