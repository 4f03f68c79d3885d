package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimstats/internal/claims"
	"github.com/gyeh/claimstats/internal/exitcode"
	"github.com/gyeh/claimstats/internal/logging"
	"github.com/gyeh/claimstats/internal/normalize"
	"github.com/gyeh/claimstats/internal/tabular"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats (no export)",
	RunE:  runPlan,
}

func init() {
	addInputFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ReadError)
	}

	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ReadError)
	}

	table, err := tabular.Open(cfg.FilePath, cfg.InputFormat())
	if err != nil {
		log.Error().Err(err).Msg("failed to read input file")
		os.Exit(exitcode.ReadError)
	}

	ds, err := claims.Prepare(log, table, cfg.Headers())
	if err != nil {
		var se *tabular.SchemaError
		if errors.As(err, &se) {
			fmt.Printf("Schema validation: FAILED (%s)\n", se.Error())
			os.Exit(exitcode.ValidationError)
		}
		log.Error().Err(err).Msg("clean failed")
		os.Exit(exitcode.PipelineError)
	}
	rep := ds.Report

	fmt.Println("=== claimsreport plan ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Format:     %s\n", table.Format)
	fmt.Printf("Columns:    %d\n", len(table.Header))
	fmt.Printf("Rows read:  %d\n", rep.RowsRead)
	fmt.Printf("Rows kept:  %d\n", rep.RowsKept)
	fmt.Printf("Dropped:    %d (unparseable remittance date)\n", rep.RowsDropped)
	fmt.Printf("Coerced:    %d amount cells read as 0\n", rep.CellsCoerced)
	if len(rep.MissingOptional) > 0 {
		fmt.Printf("Absent:     %s (read as 0)\n", strings.Join(rep.MissingOptional, ", "))
	}
	fmt.Println()

	years := make([]string, len(ds.Years))
	for i, y := range ds.Years {
		years[i] = fmt.Sprint(y)
	}
	fmt.Printf("Years (%d):  %s\n", len(ds.Years), strings.Join(years, ", "))
	fmt.Printf("Payers (%d): %s\n", len(ds.Payers), strings.Join(ds.Payers, ", "))

	if len(rep.Issues) > 0 {
		fmt.Println()
		fmt.Printf("Sample issues (first %d):\n", len(rep.Issues))
		for _, issue := range rep.Issues {
			fmt.Printf("  %s\n", issue.Error())
		}
	}
	fmt.Println("\nSchema validation: OK")

	return nil
}
