package claims

import (
	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/normalize"
)

// Derive computes the four financial totals of a claim row:
//
//	total_submitted = submitted + resubmitted_1 + resubmitted_2
//	total_paid      = paid + resubmission_paid_1 + resubmission_paid_2
//	total_denied    = (denied - resubmitted_1) + (resubmission_denied_1 - resubmitted_2) + resubmission_denied_2
//	total_pending   = submitted - (total_paid + total_denied)
//
// Sums are exact; each total is rounded to 2 places half away from zero.
func Derive(r *model.ClaimRecord) model.Totals {
	submitted := r.SubmittedAmount.Add(r.ResubmittedAmount1).Add(r.ResubmittedAmount2)
	paid := r.PaidAmount.Add(r.ResubmissionPaidAmount1).Add(r.ResubmissionPaidAmount2)
	denied := r.DeniedAmount.Sub(r.ResubmittedAmount1).
		Add(r.ResubmissionDeniedAmount1.Sub(r.ResubmittedAmount2)).
		Add(r.ResubmissionDeniedAmount2)
	pending := r.SubmittedAmount.Sub(paid.Add(denied))

	return model.Totals{
		TotalSubmitted: normalize.RoundAmount(submitted),
		TotalPaid:      normalize.RoundAmount(paid),
		TotalDenied:    normalize.RoundAmount(denied),
		TotalPending:   normalize.RoundAmount(pending),
	}
}
