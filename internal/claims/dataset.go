package claims

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/tabular"
)

// Dataset is a validated, cleaned record set ready to be filtered.
type Dataset struct {
	Format  tabular.Format
	Records []model.ClaimRecord
	Report  *CleanReport
	Years   []int
	Payers  []string
}

// View is the filtered record set and its two aggregate tables.
type View struct {
	Years   []int
	Payers  []string
	Records []model.ClaimRecord
	Monthly []model.MonthlyPaidRow
	Summary []model.SummaryRow
}

// Empty reports whether the filters selected no claims.
func (v *View) Empty() bool {
	return len(v.Records) == 0
}

// Prepare validates the table header against the required columns and
// cleans every row. A *tabular.SchemaError is returned, unwrapped, when
// required columns are missing.
func Prepare(log zerolog.Logger, t *tabular.Table, headers map[string]string) (*Dataset, error) {
	start := time.Now()

	if err := tabular.ValidateSchema(t.Header, model.RequiredHeaders(headers)); err != nil {
		return nil, err
	}

	records, report := Clean(t, headers)
	ds := &Dataset{
		Format:  t.Format,
		Records: records,
		Report:  report,
		Years:   DistinctYears(records),
		Payers:  DistinctPayers(records),
	}

	for _, issue := range report.Issues {
		log.Debug().
			Int64("row", issue.Row).
			Str("column", issue.Column).
			Str("value", issue.Value).
			Msg(issue.Reason)
	}
	if len(report.MissingOptional) > 0 {
		log.Warn().
			Strs("columns", report.MissingOptional).
			Msg("amount columns absent from input, reading as zero")
	}
	log.Info().
		Int64("rows_read", report.RowsRead).
		Int64("rows_kept", report.RowsKept).
		Int64("rows_dropped", report.RowsDropped).
		Int64("cells_coerced", report.CellsCoerced).
		Int("years", len(ds.Years)).
		Int("payers", len(ds.Payers)).
		Dur("duration", time.Since(start)).
		Msg("clean complete")

	return ds, nil
}

// View resolves the selections against the dataset, filters, and builds
// both aggregates from scratch.
func (d *Dataset) View(years Selection[int], payers Selection[string]) *View {
	effYears := ResolveSelection(d.Years, years)
	effPayers := ResolveSelection(d.Payers, payers)
	filtered := Filter(d.Records, effYears, effPayers)
	return &View{
		Years:   effYears,
		Payers:  effPayers,
		Records: filtered,
		Monthly: MonthlyPaid(filtered),
		Summary: Summarize(filtered),
	}
}
