package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gyeh/claimstats/internal/normalize"
)

// Open reads the file at path into a Table, detecting its format from the
// extension unless format is non-empty.
func Open(path string, format Format) (*Table, error) {
	if format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read decodes r as the given format. Spreadsheet and Parquet inputs are
// buffered fully in memory.
func Read(r io.Reader, format Format) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch format {
	case FormatCSV:
		t, err = readDelimited(r, ',')
	case FormatTSV:
		t, err = readDelimited(r, '\t')
	case FormatXLSX:
		t, err = readXLSX(r)
	case FormatParquet:
		data, rerr := io.ReadAll(r)
		if rerr != nil {
			return nil, fmt.Errorf("read parquet input: %w", rerr)
		}
		t, err = readParquet(bytes.NewReader(data), int64(len(data)))
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	t.Format = format
	return t, nil
}

func readDelimited(r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(bufio.NewReaderSize(r, 256*1024))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	t := &Table{Header: normalize.NormalizeHeaders(header)}
	lastLine, _ := reader.FieldPos(0)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("read input: %w", err)
			}
			return nil, fmt.Errorf("read line %d: %w", lastLine+1, err)
		}
		lastLine, _ = reader.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}
