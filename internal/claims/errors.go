package claims

import (
	"errors"
	"fmt"
)

// Pipeline phases, used to tag PipelineError.
const (
	PhaseLoad      = "load"
	PhaseValidate  = "validate"
	PhaseClean     = "clean"
	PhaseFilter    = "filter"
	PhaseAggregate = "aggregate"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// ErrEmptyResult is the warning reported when the filters select no claims.
// Views built from an empty selection are valid, zero-row tables.
var ErrEmptyResult = errors.New("no claims match the selected filters")

// ParseIssue records one lenient coercion: an amount cell that did not parse
// and became zero, or a row dropped for an unparseable remittance date.
type ParseIssue struct {
	Row    int64 // 1-based data row
	Column string
	Value  string
	Reason string
}

func (p ParseIssue) Error() string {
	return fmt.Sprintf("row %d column %s: %s (value %q)", p.Row, p.Column, p.Reason, p.Value)
}
