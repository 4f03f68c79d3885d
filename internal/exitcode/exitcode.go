package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	ReadError       = 3
	ExportError     = 4
	PipelineError   = 5
	ServeError      = 6
)
