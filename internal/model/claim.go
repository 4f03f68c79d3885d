package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the output layout for remittance dates.
const DateLayout = "2006-01-02"

// MonthAbbrevs holds the English three-letter month names, Jan first.
var MonthAbbrevs = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Totals are the four derived financial metrics of a claim row, each
// rounded to 2 decimal places.
type Totals struct {
	TotalSubmitted decimal.Decimal
	TotalPaid      decimal.Decimal
	TotalDenied    decimal.Decimal
	TotalPending   decimal.Decimal
}

// Add returns the element-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		TotalSubmitted: t.TotalSubmitted.Add(o.TotalSubmitted),
		TotalPaid:      t.TotalPaid.Add(o.TotalPaid),
		TotalDenied:    t.TotalDenied.Add(o.TotalDenied),
		TotalPending:   t.TotalPending.Add(o.TotalPending),
	}
}

// ClaimRecord is one cleaned remittance row. RemittanceDate is always set;
// rows whose date does not parse never become records.
type ClaimRecord struct {
	SourceRow int64

	RemittanceDate time.Time
	PayerName      string

	SubmittedAmount    decimal.Decimal
	ResubmittedAmount1 decimal.Decimal
	ResubmittedAmount2 decimal.Decimal

	PaidAmount              decimal.Decimal
	ResubmissionPaidAmount1 decimal.Decimal
	ResubmissionPaidAmount2 decimal.Decimal

	DeniedAmount              decimal.Decimal
	ResubmissionDeniedAmount1 decimal.Decimal
	ResubmissionDeniedAmount2 decimal.Decimal

	Totals

	RemittanceYear  int
	RemittanceMonth string
	Quarter         int
}

// AmountRefs returns field key -> pointer for the nine amount columns.
func (r *ClaimRecord) AmountRefs() map[string]*decimal.Decimal {
	return map[string]*decimal.Decimal{
		KeySubmittedAmount:           &r.SubmittedAmount,
		KeyResubmittedAmount1:        &r.ResubmittedAmount1,
		KeyResubmittedAmount2:        &r.ResubmittedAmount2,
		KeyPaidAmount:                &r.PaidAmount,
		KeyResubmissionPaidAmount1:   &r.ResubmissionPaidAmount1,
		KeyResubmissionPaidAmount2:   &r.ResubmissionPaidAmount2,
		KeyDeniedAmount:              &r.DeniedAmount,
		KeyResubmissionDeniedAmount1: &r.ResubmissionDeniedAmount1,
		KeyResubmissionDeniedAmount2: &r.ResubmissionDeniedAmount2,
	}
}

// ClaimColumns returns the ordered column names of the cleaned record set.
func ClaimColumns() []string {
	cols := make([]string, 0, len(AllFields)+7)
	for _, f := range AllFields {
		cols = append(cols, f.Header)
	}
	return append(cols,
		"Total_Submitted",
		"Total_Paid",
		"Total_Denied",
		"Total_Pending",
		"Remittance_Year",
		"Remittance_Month",
		"Quarter",
	)
}

// Values returns the record formatted in ClaimColumns order.
func (r *ClaimRecord) Values() []string {
	refs := r.AmountRefs()
	vals := []string{r.RemittanceDate.Format(DateLayout), r.PayerName}
	for _, f := range AmountFields() {
		vals = append(vals, refs[f.Key].StringFixed(2))
	}
	return append(vals,
		r.TotalSubmitted.StringFixed(2),
		r.TotalPaid.StringFixed(2),
		r.TotalDenied.StringFixed(2),
		r.TotalPending.StringFixed(2),
		strconv.Itoa(r.RemittanceYear),
		r.RemittanceMonth,
		strconv.Itoa(r.Quarter),
	)
}

// CellValues returns the record in ClaimColumns order with numeric columns
// as numbers, for spreadsheet output.
func (r *ClaimRecord) CellValues() []any {
	refs := r.AmountRefs()
	vals := []any{r.RemittanceDate.Format(DateLayout), r.PayerName}
	for _, f := range AmountFields() {
		vals = append(vals, refs[f.Key].InexactFloat64())
	}
	return append(vals,
		r.TotalSubmitted.InexactFloat64(),
		r.TotalPaid.InexactFloat64(),
		r.TotalDenied.InexactFloat64(),
		r.TotalPending.InexactFloat64(),
		r.RemittanceYear,
		r.RemittanceMonth,
		r.Quarter,
	)
}
