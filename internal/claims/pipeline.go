package claims

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimstats/internal/config"
	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/normalize"
	"github.com/gyeh/claimstats/internal/tabular"
)

// Result is the output of a full pipeline run.
type Result struct {
	Dataset *Dataset
	View    *View
	Summary *model.RunSummary
}

// Run executes the full pipeline: load → validate → clean → filter →
// aggregate. An empty filtered set is not an error; the view's tables are
// empty and a warning is logged.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config) (*Result, error) {
	totalStart := time.Now()
	runID := uuid.New().String()
	log = log.With().Str("run_id", runID).Logger()

	years, err := ParseYearSelection(cfg.Years)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseFilter, Err: err}
	}
	payers := ParsePayerSelection(cfg.Payers)

	// Phase 1: Load
	log.Info().Str("file", filepath.Base(cfg.FilePath)).Msg("loading input")
	readStart := time.Now()
	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}
	table, err := tabular.Open(cfg.FilePath, cfg.InputFormat())
	if err != nil {
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}
	readDur := time.Since(readStart)
	log.Info().
		Str("format", string(table.Format)).
		Str("sha256", sha).
		Int("rows", len(table.Rows)).
		Dur("duration", readDur).
		Msg("load complete")

	if err := ctx.Err(); err != nil {
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}

	// Phase 2-3: Validate + clean
	cleanStart := time.Now()
	ds, err := Prepare(log, table, cfg.Headers())
	if err != nil {
		var se *tabular.SchemaError
		if errors.As(err, &se) {
			return nil, &PipelineError{Phase: PhaseValidate, Err: err}
		}
		return nil, &PipelineError{Phase: PhaseClean, Err: err}
	}
	cleanDur := time.Since(cleanStart)

	if err := ctx.Err(); err != nil {
		return nil, &PipelineError{Phase: PhaseClean, Err: err}
	}

	// Phase 4-5: Filter + aggregate
	aggStart := time.Now()
	view := ds.View(years, payers)
	aggDur := time.Since(aggStart)

	if view.Empty() {
		log.Warn().
			Ints("years", view.Years).
			Strs("payers", view.Payers).
			Msg(ErrEmptyResult.Error())
	}

	summary := &model.RunSummary{
		RunID:             runID,
		FilePath:          cfg.FilePath,
		FileSHA256:        sha,
		Format:            string(table.Format),
		RowsRead:          ds.Report.RowsRead,
		RowsKept:          ds.Report.RowsKept,
		RowsDropped:       ds.Report.RowsDropped,
		CellsCoerced:      ds.Report.CellsCoerced,
		RowsFiltered:      int64(len(view.Records)),
		MonthlyRows:       len(view.Monthly),
		SummaryRows:       len(view.Summary),
		DurationRead:      readDur,
		DurationClean:     cleanDur,
		DurationAggregate: aggDur,
		DurationTotal:     time.Since(totalStart),
	}

	log.Info().
		Int64("rows_filtered", summary.RowsFiltered).
		Int("monthly_rows", summary.MonthlyRows).
		Int("summary_rows", summary.SummaryRows).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("pipeline complete")

	return &Result{Dataset: ds, View: view, Summary: summary}, nil
}

// Describe renders a PipelineError for end users, keeping the original
// failure text.
func Describe(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return fmt.Sprintf("claims pipeline failed during %s: %v", pe.Phase, pe.Err)
	}
	return fmt.Sprintf("claims pipeline failed: %v", err)
}
