package model

import "time"

// RunSummary captures metrics from a single pipeline run.
type RunSummary struct {
	RunID             string
	FilePath          string
	FileSHA256        string
	Format            string
	RowsRead          int64
	RowsKept          int64
	RowsDropped       int64 // unparseable remittance date
	CellsCoerced      int64 // non-empty amount cells that did not parse
	RowsFiltered      int64
	MonthlyRows       int
	SummaryRows       int
	DurationRead      time.Duration
	DurationClean     time.Duration
	DurationAggregate time.Duration
	DurationTotal     time.Duration
}
