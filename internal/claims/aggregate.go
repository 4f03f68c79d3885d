package claims

import (
	"sort"

	"github.com/gyeh/claimstats/internal/model"
)

type groupKey struct {
	year  int
	payer string
}

func sortKeys(keys []groupKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].payer < keys[j].payer
	})
}

// MonthlyPaid sums total paid by (year, payer, month) and pivots months into
// twelve Jan..Dec columns, zero-filled. Rows are ordered by year, then payer.
func MonthlyPaid(records []model.ClaimRecord) []model.MonthlyPaidRow {
	groups := make(map[groupKey]*model.MonthlyPaidRow)
	var keys []groupKey
	for i := range records {
		r := &records[i]
		k := groupKey{r.RemittanceYear, r.PayerName}
		row, ok := groups[k]
		if !ok {
			row = &model.MonthlyPaidRow{Year: k.year, PayerName: k.payer}
			groups[k] = row
			keys = append(keys, k)
		}
		m := r.RemittanceDate.Month() - 1
		row.Months[m] = row.Months[m].Add(r.TotalPaid)
	}

	sortKeys(keys)
	out := make([]model.MonthlyPaidRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, *groups[k])
	}
	return out
}

// Summarize sums the four totals by (year, payer). Rows are ordered by year,
// then payer.
func Summarize(records []model.ClaimRecord) []model.SummaryRow {
	groups := make(map[groupKey]*model.SummaryRow)
	var keys []groupKey
	for i := range records {
		r := &records[i]
		k := groupKey{r.RemittanceYear, r.PayerName}
		row, ok := groups[k]
		if !ok {
			row = &model.SummaryRow{Year: k.year, PayerName: k.payer}
			groups[k] = row
			keys = append(keys, k)
		}
		row.Totals = row.Totals.Add(r.Totals)
	}

	sortKeys(keys)
	out := make([]model.SummaryRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, *groups[k])
	}
	return out
}
