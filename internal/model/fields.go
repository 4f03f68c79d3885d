package model

import "github.com/gyeh/claimstats/internal/normalize"

// Field describes one canonical column of a remittance file.
type Field struct {
	Key      string // config key, e.g. "paid_amount"
	Header   string // default source header, e.g. "Paid_Amount"
	Required bool   // absence fails schema validation
	Amount   bool   // currency column, coerced to decimal
}

// Canonical field keys.
const (
	KeyRemittanceDate            = "remittance_date"
	KeyPayerName                 = "payer_name"
	KeySubmittedAmount           = "submitted_amount"
	KeyResubmittedAmount1        = "resubmitted_amount_1"
	KeyResubmittedAmount2        = "resubmitted_amount_2"
	KeyPaidAmount                = "paid_amount"
	KeyResubmissionPaidAmount1   = "resubmission_paid_amount_1"
	KeyResubmissionPaidAmount2   = "resubmission_paid_amount_2"
	KeyDeniedAmount              = "denied_amount"
	KeyResubmissionDeniedAmount1 = "resubmission_denied_amount_1"
	KeyResubmissionDeniedAmount2 = "resubmission_denied_amount_2"
)

// AllFields lists the input columns in canonical order.
var AllFields = []Field{
	{Key: KeyRemittanceDate, Header: "Remittance_Date", Required: true},
	{Key: KeyPayerName, Header: "Payer_Name", Required: true},
	{Key: KeySubmittedAmount, Header: "Submitted_Amount", Amount: true},
	{Key: KeyResubmittedAmount1, Header: "Resubmitted_Amount_1", Amount: true},
	{Key: KeyResubmittedAmount2, Header: "Resubmitted_Amount_2", Amount: true},
	{Key: KeyPaidAmount, Header: "Paid_Amount", Required: true, Amount: true},
	{Key: KeyResubmissionPaidAmount1, Header: "Resubmission_Paid_Amount_1", Amount: true},
	{Key: KeyResubmissionPaidAmount2, Header: "Resubmission_Paid_Amount_2", Amount: true},
	{Key: KeyDeniedAmount, Header: "Denied_Amount", Amount: true},
	{Key: KeyResubmissionDeniedAmount1, Header: "Resubmission_Denied_Amount_1", Amount: true},
	{Key: KeyResubmissionDeniedAmount2, Header: "Resubmission_Denied_Amount_2", Amount: true},
}

// AmountFields returns the nine currency fields in canonical order.
func AmountFields() []Field {
	var out []Field
	for _, f := range AllFields {
		if f.Amount {
			out = append(out, f)
		}
	}
	return out
}

// FieldByKey returns the Field for the given key, or ok=false.
func FieldByKey(key string) (Field, bool) {
	for _, f := range AllFields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// HeaderMap resolves each field key to the source header it is read from.
// Override values are normalized the same way input headers are; keys
// absent from overrides, or blank after trimming, fall back to the canonical
// header.
func HeaderMap(overrides map[string]string) map[string]string {
	m := make(map[string]string, len(AllFields))
	for _, f := range AllFields {
		m[f.Key] = f.Header
		if h := normalize.NormalizeHeader(overrides[f.Key]); h != "" {
			m[f.Key] = h
		}
	}
	return m
}

// RequiredHeaders returns the source headers that must be present, in
// canonical order, given a resolved header map.
func RequiredHeaders(headers map[string]string) []string {
	var out []string
	for _, f := range AllFields {
		if f.Required {
			out = append(out, headers[f.Key])
		}
	}
	return out
}
