package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimstats/internal/exitcode"
	"github.com/gyeh/claimstats/internal/logging"
	"github.com/gyeh/claimstats/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve upload, filter and export over HTTP",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Listen, "listen", "", "Listen address (default :8080)")
	f.Int64Var(&cfg.MaxUploadBytes, "max-upload-bytes", 64<<20, "Maximum upload size in bytes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Load(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(log, &cfg).ListenAndServe(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(exitcode.ServeError)
	}
	return nil
}
