package tabular

import (
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/normalize"
)

const readBatchSize = 1024

// readParquet streams ClaimParquetRow records into a Table. Only canonical
// columns present in the file schema become table columns, so schema
// validation sees exactly what the file carries.
func readParquet(ra io.ReaderAt, size int64) (*Table, error) {
	pf, err := parquet.OpenFile(ra, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	present := make(map[string]bool)
	for _, field := range pf.Schema().Fields() {
		present[normalize.NormalizeHeader(field.Name())] = true
	}

	var fields []model.Field
	t := &Table{}
	for _, f := range model.AllFields {
		if present[f.Header] {
			fields = append(fields, f)
			t.Header = append(t.Header, f.Header)
		}
	}

	reader := parquet.NewGenericReader[model.ClaimParquetRow](pf)
	defer reader.Close()

	buf := make([]model.ClaimParquetRow, readBatchSize)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			t.Rows = append(t.Rows, parquetCells(&buf[i], fields))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}
	return t, nil
}

func parquetCells(row *model.ClaimParquetRow, fields []model.Field) []string {
	amounts := row.AmountValues()
	cells := make([]string, len(fields))
	for i, f := range fields {
		switch f.Key {
		case model.KeyRemittanceDate:
			cells[i] = derefStr(row.RemittanceDate)
		case model.KeyPayerName:
			cells[i] = derefStr(row.PayerName)
		default:
			if v := amounts[f.Key]; v != nil {
				cells[i] = strconv.FormatFloat(*v, 'f', -1, 64)
			}
		}
	}
	return cells
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
