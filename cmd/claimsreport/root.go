package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/claimstats/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "claimsreport",
	Short: "Insurance claims remittance metrics and Excel export",
	Long: "Reads a claims remittance file (CSV, TSV, XLSX or Parquet), derives per-claim totals, " +
		"filters by remittance year and payer, and reports monthly paid and summary tables.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&cfg.ConfigPath, "config", "", "Optional YAML config (column overrides, default filters, listen address)")
}

// addInputFlags registers the flags shared by commands that read one file.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to claims file (required)")
	f.StringVar(&cfg.Format, "format", "", "Input format: csv, tsv, xlsx or parquet (default: from extension)")
	_ = cmd.MarkFlagRequired("file")
}

// addFilterFlags registers the year and payer selections. Omitting a flag
// selects ALL; ALL anywhere in a list overrides the explicit values.
func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&cfg.Years, "year", nil, "Remittance years to include, repeatable or comma separated (ALL for every year)")
	f.StringArrayVar(&cfg.Payers, "payer", nil, "Payer name to include, repeatable (uppercase ALL for every payer)")
}
