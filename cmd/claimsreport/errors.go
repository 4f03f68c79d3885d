package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/gyeh/claimstats/internal/claims"
	"github.com/gyeh/claimstats/internal/exitcode"
)

// exitPipeline logs a pipeline failure and exits with the code for its phase.
func exitPipeline(log zerolog.Logger, err error) {
	var pe *claims.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg(claims.Describe(err))
		switch pe.Phase {
		case claims.PhaseLoad:
			os.Exit(exitcode.ReadError)
		case claims.PhaseValidate:
			os.Exit(exitcode.ValidationError)
		case claims.PhaseFilter:
			os.Exit(exitcode.UsageError)
		default:
			os.Exit(exitcode.PipelineError)
		}
	}
	log.Error().Err(err).Msg(claims.Describe(err))
	os.Exit(exitcode.PipelineError)
}
