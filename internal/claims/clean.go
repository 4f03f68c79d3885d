package claims

import (
	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/normalize"
	"github.com/gyeh/claimstats/internal/tabular"
)

// maxIssueSamples bounds how many ParseIssues a CleanReport keeps.
const maxIssueSamples = 20

const (
	reasonBadAmount = "not a number, coerced to 0"
	reasonBadDate   = "unparseable date, row dropped"
)

// CleanReport summarizes what cleaning kept, dropped and coerced.
type CleanReport struct {
	RowsRead     int64
	RowsKept     int64
	RowsDropped  int64
	CellsCoerced int64
	// MissingOptional lists amount headers absent from the input; they
	// are read as zero for every row.
	MissingOptional []string
	// Issues holds the first few parse issues encountered.
	Issues []ParseIssue
}

func (r *CleanReport) addIssue(p ParseIssue) {
	if len(r.Issues) < maxIssueSamples {
		r.Issues = append(r.Issues, p)
	}
}

// Clean converts a validated table into typed records. headers maps field
// keys to source headers (see model.HeaderMap). Unparseable amounts become
// zero; rows with an unparseable remittance date are dropped. Derived
// totals and calendar fields are filled in.
func Clean(t *tabular.Table, headers map[string]string) ([]model.ClaimRecord, *CleanReport) {
	report := &CleanReport{}

	dateCol := t.Index(headers[model.KeyRemittanceDate])
	payerCol := t.Index(headers[model.KeyPayerName])

	type amountCol struct {
		key    string
		header string
		idx    int
	}
	var amountCols []amountCol
	for _, f := range model.AmountFields() {
		h := headers[f.Key]
		idx := t.Index(h)
		if idx < 0 {
			report.MissingOptional = append(report.MissingOptional, h)
			continue
		}
		amountCols = append(amountCols, amountCol{key: f.Key, header: h, idx: idx})
	}

	parseDate := normalize.ParseDate
	if t.Format == tabular.FormatXLSX {
		parseDate = normalize.ParseSpreadsheetDate
	}

	records := make([]model.ClaimRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		rowNum := int64(i + 1)
		report.RowsRead++

		rawDate := tabular.Cell(row, dateCol)
		date := parseDate(rawDate)
		if date == nil {
			report.RowsDropped++
			report.addIssue(ParseIssue{Row: rowNum, Column: headers[model.KeyRemittanceDate], Value: rawDate, Reason: reasonBadDate})
			continue
		}

		rec := model.ClaimRecord{
			SourceRow:      rowNum,
			RemittanceDate: *date,
			PayerName:      normalize.NormalizeName(tabular.Cell(row, payerCol)),
		}

		refs := rec.AmountRefs()
		for _, c := range amountCols {
			raw := tabular.Cell(row, c.idx)
			v, ok := normalize.ParseAmount(raw)
			if !ok {
				report.CellsCoerced++
				report.addIssue(ParseIssue{Row: rowNum, Column: c.header, Value: raw, Reason: reasonBadAmount})
			}
			*refs[c.key] = v
		}

		rec.Totals = Derive(&rec)
		rec.RemittanceYear = date.Year()
		rec.RemittanceMonth = model.MonthAbbrevs[date.Month()-1]
		rec.Quarter = normalize.Quarter(*date)

		records = append(records, rec)
		report.RowsKept++
	}

	return records, report
}
