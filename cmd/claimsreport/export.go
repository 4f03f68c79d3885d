package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimstats/internal/claims"
	"github.com/gyeh/claimstats/internal/config"
	"github.com/gyeh/claimstats/internal/exitcode"
	"github.com/gyeh/claimstats/internal/export"
	"github.com/gyeh/claimstats/internal/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered report workbook",
	RunE:  runExport,
}

func init() {
	addInputFlags(exportCmd)
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVar(&cfg.OutPath, "out", config.DefaultReportName, "Destination workbook path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.ValidateWithOutput(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	res, err := claims.Run(ctx, log, &cfg)
	if err != nil {
		exitPipeline(log, err)
	}
	if res.View.Empty() {
		fmt.Println(claims.ErrEmptyResult.Error() + "; writing headers only.")
	}

	err = export.WithTempWorkbook(res.View, func(path string) error {
		return export.CopyFile(cfg.OutPath, path)
	})
	if err != nil {
		log.Error().Err(err).Str("out", cfg.OutPath).Msg("export failed")
		os.Exit(exitcode.ExportError)
	}

	log.Info().Str("out", cfg.OutPath).Int64("claims", res.Summary.RowsFiltered).Msg("workbook written")
	fmt.Printf("Export complete: %s (%d claims, %d summary rows)\n",
		cfg.OutPath, res.Summary.RowsFiltered, res.Summary.SummaryRows)
	return nil
}
