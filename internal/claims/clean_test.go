package claims

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/tabular"
)

var fullHeader = []string{
	"Remittance_Date", "Payer_Name",
	"Submitted_Amount", "Resubmitted_Amount_1", "Resubmitted_Amount_2",
	"Paid_Amount", "Resubmission_Paid_Amount_1", "Resubmission_Paid_Amount_2",
	"Denied_Amount", "Resubmission_Denied_Amount_1", "Resubmission_Denied_Amount_2",
}

// claimRow builds a full-width row: date, payer, submitted, paid, denied,
// with every resubmission column zero.
func claimRow(date, payer, submitted, paid, denied string) []string {
	return []string{date, payer, submitted, "0", "0", paid, "0", "0", denied, "0", "0"}
}

func TestClean_Example(t *testing.T) {
	tbl := &tabular.Table{
		Format: tabular.FormatCSV,
		Header: fullHeader,
		Rows:   [][]string{claimRow("2021-03-15", "Acme", "100", "80", "20")},
	}
	records, report := Clean(tbl, model.HeaderMap(nil))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	want := []string{
		"2021-03-15", "Acme",
		"100.00", "0.00", "0.00", "80.00", "0.00", "0.00", "20.00", "0.00", "0.00",
		"100.00", "80.00", "20.00", "0.00",
		"2021", "Mar", "1",
	}
	if diff := cmp.Diff(want, r.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if r.SourceRow != 1 {
		t.Errorf("SourceRow: got %d", r.SourceRow)
	}
	if report.RowsRead != 1 || report.RowsKept != 1 || report.RowsDropped != 0 || report.CellsCoerced != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestClean_UnparseableAmountCoercedToZero(t *testing.T) {
	tbl := &tabular.Table{
		Format: tabular.FormatCSV,
		Header: fullHeader,
		Rows:   [][]string{claimRow("2021-03-15", "Acme", "100", "abc", "")},
	}
	records, report := Clean(tbl, model.HeaderMap(nil))

	if len(records) != 1 {
		t.Fatalf("row should be retained, got %d records", len(records))
	}
	if !records[0].PaidAmount.IsZero() {
		t.Errorf("PaidAmount: got %s, want 0", records[0].PaidAmount)
	}
	if !records[0].TotalPending.Equal(d("100")) {
		t.Errorf("TotalPending: got %s, want 100", records[0].TotalPending)
	}
	if report.CellsCoerced != 1 {
		t.Errorf("CellsCoerced: got %d, want 1 (blank cells are not coercions)", report.CellsCoerced)
	}
	if len(report.Issues) != 1 || report.Issues[0].Column != "Paid_Amount" || report.Issues[0].Value != "abc" {
		t.Errorf("unexpected issues: %+v", report.Issues)
	}
}

func TestClean_DropsUnparseableDates(t *testing.T) {
	tbl := &tabular.Table{
		Format: tabular.FormatCSV,
		Header: fullHeader,
		Rows: [][]string{
			claimRow("not-a-date", "Acme", "1", "1", "0"),
			claimRow("", "Acme", "1", "1", "0"),
			claimRow("2022-07-04", "Acme", "1", "1", "0"),
		},
	}
	records, report := Clean(tbl, model.HeaderMap(nil))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].SourceRow != 3 {
		t.Errorf("kept wrong row: %d", records[0].SourceRow)
	}
	if report.RowsDropped != 2 || report.RowsKept != 1 || report.RowsRead != 3 {
		t.Errorf("unexpected report: %+v", report)
	}
	for _, r := range records {
		if r.RemittanceDate.IsZero() {
			t.Error("record with zero remittance date survived cleaning")
		}
	}
}

func TestClean_AbsentOptionalColumnsReadAsZero(t *testing.T) {
	tbl := &tabular.Table{
		Format: tabular.FormatCSV,
		Header: []string{"Remittance_Date", "Payer_Name", "Paid_Amount", "Submitted_Amount"},
		Rows:   [][]string{{"2023-11-30", "Acme", "40", "50"}},
	}
	records, report := Clean(tbl, model.HeaderMap(nil))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if !r.TotalDenied.IsZero() || !r.TotalPending.Equal(d("10")) {
		t.Errorf("unexpected totals: %+v", r.Totals)
	}
	if r.Quarter != 4 || r.RemittanceMonth != "Nov" || r.RemittanceYear != 2023 {
		t.Errorf("calendar fields: year=%d month=%s quarter=%d", r.RemittanceYear, r.RemittanceMonth, r.Quarter)
	}
	if len(report.MissingOptional) != 7 {
		t.Errorf("MissingOptional: got %v", report.MissingOptional)
	}
}

func TestClean_ShortRowsAndPayerTrim(t *testing.T) {
	tbl := &tabular.Table{
		Format: tabular.FormatCSV,
		Header: fullHeader,
		Rows:   [][]string{{"2021-01-10", "  Acme Health  ", "10"}},
	}
	records, _ := Clean(tbl, model.HeaderMap(nil))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].PayerName != "Acme Health" {
		t.Errorf("payer: got %q", records[0].PayerName)
	}
	if !records[0].PaidAmount.IsZero() {
		t.Errorf("missing trailing cell should be zero, got %s", records[0].PaidAmount)
	}
}

func TestClean_SpreadsheetSerialDates(t *testing.T) {
	rows := [][]string{{"44270", "Acme", "1", "0", "0", "1", "0", "0", "0", "0", "0"}}

	csvTbl := &tabular.Table{Format: tabular.FormatCSV, Header: fullHeader, Rows: rows}
	if recs, _ := Clean(csvTbl, model.HeaderMap(nil)); len(recs) != 0 {
		t.Errorf("csv should not accept serial dates, got %d records", len(recs))
	}

	xlsxTbl := &tabular.Table{Format: tabular.FormatXLSX, Header: fullHeader, Rows: rows}
	recs, _ := Clean(xlsxTbl, model.HeaderMap(nil))
	if len(recs) != 1 {
		t.Fatalf("xlsx serial date should parse, got %d records", len(recs))
	}
	want := time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !recs[0].RemittanceDate.Equal(want) {
		t.Errorf("date: got %v, want %v", recs[0].RemittanceDate, want)
	}
}

func TestClean_HeaderOverrides(t *testing.T) {
	tbl := &tabular.Table{
		Format: tabular.FormatCSV,
		Header: []string{"Remit Date", "Insurer", "Paid"},
		Rows:   [][]string{{"2021-05-01", "Acme", "12.5"}},
	}
	headers := model.HeaderMap(map[string]string{
		model.KeyRemittanceDate: "Remit Date",
		model.KeyPayerName:      "Insurer",
		model.KeyPaidAmount:     "Paid",
	})
	records, _ := Clean(tbl, headers)
	if len(records) != 1 || !records[0].TotalPaid.Equal(d("12.5")) {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestClean_IssueSamplesBounded(t *testing.T) {
	tbl := &tabular.Table{Format: tabular.FormatCSV, Header: fullHeader}
	for i := 0; i < maxIssueSamples+10; i++ {
		tbl.Rows = append(tbl.Rows, claimRow("bad", "Acme", "1", "1", "0"))
	}
	_, report := Clean(tbl, model.HeaderMap(nil))
	if len(report.Issues) != maxIssueSamples {
		t.Errorf("Issues: got %d, want %d", len(report.Issues), maxIssueSamples)
	}
	if report.RowsDropped != int64(maxIssueSamples+10) {
		t.Errorf("RowsDropped: got %d", report.RowsDropped)
	}
}

func TestClean_PaddedHeaderOverrides(t *testing.T) {
	tbl := &tabular.Table{
		Format: tabular.FormatCSV,
		Header: []string{"Remit Date", "Payer_Name", "Paid_Amount", "Denied"},
		Rows:   [][]string{{"2021-03-15", "Acme", "80", "5"}},
	}
	headers := model.HeaderMap(map[string]string{
		model.KeyRemittanceDate: "Remit Date ",
		model.KeyDeniedAmount:   "\tDenied",
	})

	ds, err := Prepare(zerolog.Nop(), tbl, headers)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if ds.Report.RowsKept != 1 || ds.Report.RowsDropped != 0 {
		t.Fatalf("kept=%d dropped=%d, want 1 and 0", ds.Report.RowsKept, ds.Report.RowsDropped)
	}
	for _, h := range ds.Report.MissingOptional {
		if h == "Denied" {
			t.Errorf("padded override reported absent: %v", ds.Report.MissingOptional)
		}
	}
	if !ds.Records[0].TotalDenied.Equal(d("5")) {
		t.Errorf("denied: got %s, want 5", ds.Records[0].TotalDenied)
	}
}
