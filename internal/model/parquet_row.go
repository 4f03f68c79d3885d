package model

// ClaimParquetRow mirrors the Parquet schema for a single remittance line.
// Amounts are float64 matching the Parquet DOUBLE representation; they get
// converted to decimals during cleaning.
type ClaimParquetRow struct {
	RemittanceDate *string `parquet:"Remittance_Date,optional"`
	PayerName      *string `parquet:"Payer_Name,optional"`

	SubmittedAmount    *float64 `parquet:"Submitted_Amount,optional"`
	ResubmittedAmount1 *float64 `parquet:"Resubmitted_Amount_1,optional"`
	ResubmittedAmount2 *float64 `parquet:"Resubmitted_Amount_2,optional"`

	PaidAmount              *float64 `parquet:"Paid_Amount,optional"`
	ResubmissionPaidAmount1 *float64 `parquet:"Resubmission_Paid_Amount_1,optional"`
	ResubmissionPaidAmount2 *float64 `parquet:"Resubmission_Paid_Amount_2,optional"`

	DeniedAmount              *float64 `parquet:"Denied_Amount,optional"`
	ResubmissionDeniedAmount1 *float64 `parquet:"Resubmission_Denied_Amount_1,optional"`
	ResubmissionDeniedAmount2 *float64 `parquet:"Resubmission_Denied_Amount_2,optional"`
}

// AmountValues returns field key -> *float64 for the nine amount columns.
func (r *ClaimParquetRow) AmountValues() map[string]*float64 {
	return map[string]*float64{
		KeySubmittedAmount:           r.SubmittedAmount,
		KeyResubmittedAmount1:        r.ResubmittedAmount1,
		KeyResubmittedAmount2:        r.ResubmittedAmount2,
		KeyPaidAmount:                r.PaidAmount,
		KeyResubmissionPaidAmount1:   r.ResubmissionPaidAmount1,
		KeyResubmissionPaidAmount2:   r.ResubmissionPaidAmount2,
		KeyDeniedAmount:              r.DeniedAmount,
		KeyResubmissionDeniedAmount1: r.ResubmissionDeniedAmount1,
		KeyResubmissionDeniedAmount2: r.ResubmissionDeniedAmount2,
	}
}

// ToParquetRow converts a cleaned record back into its Parquet input shape.
func (r *ClaimRecord) ToParquetRow() ClaimParquetRow {
	date := r.RemittanceDate.Format(DateLayout)
	payer := r.PayerName
	vals := make(map[string]*float64, 9)
	for key, d := range r.AmountRefs() {
		v := d.InexactFloat64()
		vals[key] = &v
	}
	return ClaimParquetRow{
		RemittanceDate:            &date,
		PayerName:                 &payer,
		SubmittedAmount:           vals[KeySubmittedAmount],
		ResubmittedAmount1:        vals[KeyResubmittedAmount1],
		ResubmittedAmount2:        vals[KeyResubmittedAmount2],
		PaidAmount:                vals[KeyPaidAmount],
		ResubmissionPaidAmount1:   vals[KeyResubmissionPaidAmount1],
		ResubmissionPaidAmount2:   vals[KeyResubmissionPaidAmount2],
		DeniedAmount:              vals[KeyDeniedAmount],
		ResubmissionDeniedAmount1: vals[KeyResubmissionDeniedAmount1],
		ResubmissionDeniedAmount2: vals[KeyResubmissionDeniedAmount2],
	}
}
