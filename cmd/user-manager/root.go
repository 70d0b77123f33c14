package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"user-manager/internal/client"
	"user-manager/internal/manager"
)

// globalFlags — флаги, общие для всех команд.
type globalFlags struct {
	apiURL  string
	logFile string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "user-manager",
		Short:         "Manage users of a remote /users resource",
		Long:          "Terminal UI and commands to list, add, update, delete and search users, plus a reference /users backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", envOr("API_URL", client.DefaultBaseURL),
		"Base URL of the users resource (env API_URL)")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", os.Getenv("LOG_FILE"),
		"Write JSON logs to this file (env LOG_FILE)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0,
		"HTTP timeout for requests to the users resource, 0 disables it")

	ui := newUICmd(&flags)
	root.RunE = ui.RunE

	root.AddCommand(
		ui,
		newListCmd(&flags),
		newAddCmd(&flags),
		newUpdateCmd(&flags),
		newDeleteCmd(&flags),
		newServeCmd(&flags),
	)
	return root
}

// newLogger создаёт JSON-логгер: в файл, если он задан, иначе в fallback.
// Возвращаемая функция закрывает файл.
func newLogger(path string, fallback io.Writer) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(fallback, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), func() { _ = f.Close() }, nil
}

// newManager собирает клиента ресурса и Manager поверх него.
func newManager(flags *globalFlags, log *slog.Logger) *manager.Manager {
	opts := []client.Option{client.WithLogger(log)}
	if flags.timeout > 0 {
		opts = append(opts, client.WithTimeout(flags.timeout))
	}
	return manager.New(client.New(flags.apiURL, opts...), log)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
