package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/claimstats/internal/claims"
	"github.com/gyeh/claimstats/internal/model"
)

// Sheet names of the exported workbook, in order.
const (
	SheetMonthly = "Paid Claims Per Month"
	SheetSummary = "Summary"
	SheetRaw     = "All Claims Raw (Filtered)"
)

// Sheets lists the workbook sheets in order.
var Sheets = []string{SheetMonthly, SheetSummary, SheetRaw}

// BuildWorkbook lays out a view as a three-sheet workbook. The caller owns
// the returned file and must Close it.
func BuildWorkbook(v *claims.View) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetMonthly); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename first sheet: %w", err)
	}
	for _, name := range Sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	monthly := make([][]any, len(v.Monthly))
	for i := range v.Monthly {
		monthly[i] = v.Monthly[i].CellValues()
	}
	summary := make([][]any, len(v.Summary))
	for i := range v.Summary {
		summary[i] = v.Summary[i].CellValues()
	}
	raw := make([][]any, len(v.Records))
	for i := range v.Records {
		raw[i] = v.Records[i].CellValues()
	}

	for _, s := range []struct {
		name    string
		columns []string
		rows    [][]any
	}{
		{SheetMonthly, model.MonthlyPaidColumns(), monthly},
		{SheetSummary, model.SummaryColumns(), summary},
		{SheetRaw, model.ClaimColumns(), raw},
	} {
		if err := writeSheet(f, s.name, s.columns, s.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows [][]any) error {
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %q header: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %q row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// WriteWorkbook streams the view's workbook to w.
func WriteWorkbook(w io.Writer, v *claims.View) error {
	f, err := BuildWorkbook(v)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the view's workbook to path.
func SaveWorkbook(path string, v *claims.View) error {
	f, err := BuildWorkbook(v)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
