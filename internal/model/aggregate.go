package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// MonthlyPaidRow is one row of the monthly paid matrix: total paid per
// calendar month for a (year, payer) pair. Months[0] is January.
type MonthlyPaidRow struct {
	Year      int
	PayerName string
	Months    [12]decimal.Decimal
}

// MonthlyPaidColumns returns Remittance_Year, Payer_Name, Jan..Dec.
func MonthlyPaidColumns() []string {
	cols := []string{"Remittance_Year", "Payer_Name"}
	return append(cols, MonthAbbrevs[:]...)
}

// Values returns the row formatted in MonthlyPaidColumns order.
func (r *MonthlyPaidRow) Values() []string {
	vals := []string{strconv.Itoa(r.Year), r.PayerName}
	for _, m := range r.Months {
		vals = append(vals, m.StringFixed(2))
	}
	return vals
}

// CellValues returns the row with amounts as numbers, for spreadsheet output.
func (r *MonthlyPaidRow) CellValues() []any {
	vals := []any{r.Year, r.PayerName}
	for _, m := range r.Months {
		vals = append(vals, m.InexactFloat64())
	}
	return vals
}

// SummaryRow carries the summed totals for a (year, payer) pair.
type SummaryRow struct {
	Year      int
	PayerName string
	Totals
}

// SummaryColumns returns the ordered column names of the summary table.
func SummaryColumns() []string {
	return []string{
		"Remittance_Year",
		"Payer_Name",
		"Total_Submitted",
		"Total_Paid",
		"Total_Denied",
		"Total_Pending",
	}
}

// Values returns the row formatted in SummaryColumns order.
func (r *SummaryRow) Values() []string {
	return []string{
		strconv.Itoa(r.Year),
		r.PayerName,
		r.TotalSubmitted.StringFixed(2),
		r.TotalPaid.StringFixed(2),
		r.TotalDenied.StringFixed(2),
		r.TotalPending.StringFixed(2),
	}
}

// CellValues returns the row with amounts as numbers, for spreadsheet output.
func (r *SummaryRow) CellValues() []any {
	return []any{
		r.Year,
		r.PayerName,
		r.TotalSubmitted.InexactFloat64(),
		r.TotalPaid.InexactFloat64(),
		r.TotalDenied.InexactFloat64(),
		r.TotalPending.InexactFloat64(),
	}
}
