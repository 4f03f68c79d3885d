package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimstats/internal/claims"
	"github.com/gyeh/claimstats/internal/exitcode"
	"github.com/gyeh/claimstats/internal/export"
	"github.com/gyeh/claimstats/internal/logging"
	"github.com/gyeh/claimstats/internal/model"
)

var showRaw bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the monthly paid and summary tables",
	RunE:  runReport,
}

func init() {
	addInputFlags(reportCmd)
	addFilterFlags(reportCmd)
	reportCmd.Flags().BoolVar(&showRaw, "raw", false, "Also print every filtered claim")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	res, err := claims.Run(ctx, log, &cfg)
	if err != nil {
		exitPipeline(log, err)
	}
	v := res.View

	if v.Empty() {
		fmt.Println(claims.ErrEmptyResult.Error() + ".")
	}

	fmt.Println("Paid Claims Per Month")
	fmt.Println(export.RenderTable(model.MonthlyPaidColumns(), monthlyValues(v), 2))
	fmt.Println()
	fmt.Println("Summary")
	fmt.Println(export.RenderTable(model.SummaryColumns(), summaryValues(v), 2))

	if showRaw {
		rows := make([][]string, len(v.Records))
		for i := range v.Records {
			rows[i] = v.Records[i].Values()
		}
		fmt.Println()
		fmt.Println("All Claims (Filtered)")
		fmt.Println(export.RenderTable(model.ClaimColumns(), rows, 2))
	}

	fmt.Printf("\n%d of %d claims selected (%.2fs)\n",
		res.Summary.RowsFiltered, res.Summary.RowsKept, res.Summary.DurationTotal.Seconds())
	return nil
}

func monthlyValues(v *claims.View) [][]string {
	rows := make([][]string, len(v.Monthly))
	for i := range v.Monthly {
		rows[i] = v.Monthly[i].Values()
	}
	return rows
}

func summaryValues(v *claims.View) [][]string {
	rows := make([][]string, len(v.Summary))
	for i := range v.Summary {
		rows[i] = v.Summary[i].Values()
	}
	return rows
}
