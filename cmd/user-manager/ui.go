package main

import (
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"user-manager/internal/tui"
)

func newUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive user manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout занят интерфейсом, поэтому без --log-file логи отбрасываются.
			logger, closeLog, err := newLogger(flags.logFile, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			logger.Info("starting ui", slog.String("api_url", flags.apiURL))
			return tui.Run(ctx, newManager(flags, logger))
		},
	}
}
