package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpapi "user-manager/internal/http"
	"user-manager/internal/repository"
	"user-manager/internal/service"
)

// serveFlags — настройки эталонного сервиса /users.
type serveFlags struct {
	addr          string
	store         string
	dsn           string
	redisAddr     string
	redisPassword string
	corsOrigins   []string
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var sf serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference /users HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(flags.logFile, os.Stdout)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			repo, closeRepo, err := openStore(ctx, sf)
			if err != nil {
				return err
			}
			defer closeRepo()

			handler := httpapi.NewHandler(service.NewUserService(repo), logger, sf.corsOrigins...)
			return serve(ctx, logger, &http.Server{
				Addr:              sf.addr,
				Handler:           handler.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}

	cmd.Flags().StringVarP(&sf.addr, "addr", "a", envOr("ADDR", ":8080"), "Address to listen on (env ADDR)")
	cmd.Flags().StringVar(&sf.store, "store", envOr("STORE", "postgres"), "User store: postgres, redis or memory (env STORE)")
	cmd.Flags().StringVar(&sf.dsn, "dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN (env DB_DSN)")
	cmd.Flags().StringVarP(&sf.redisAddr, "redis-address", "r", envOr("REDIS_ADDR", "127.0.0.1:6379"), "Redis address (env REDIS_ADDR)")
	cmd.Flags().StringVarP(&sf.redisPassword, "redis-password", "p", os.Getenv("REDIS_PASSWORD"), "Redis password (env REDIS_PASSWORD)")
	cmd.Flags().StringSliceVar(&sf.corsOrigins, "cors-origin", []string{"*"}, "Allowed CORS origins")
	return cmd
}

// openStore подключает выбранное хранилище пользователей.
func openStore(ctx context.Context, sf serveFlags) (service.UserRepository, func(), error) {
	switch strings.ToLower(sf.store) {
	case "postgres":
		if sf.dsn == "" {
			return nil, nil, errors.New("DB_DSN environment variable or --dsn is required for the postgres store")
		}
		db, err := repository.NewPostgres(ctx, sf.dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Pool.Close()
			return nil, nil, err
		}
		return repository.NewUserRepo(db), db.Pool.Close, nil

	case "redis":
		repo, err := repository.NewRedisUserRepo(ctx, sf.redisAddr, sf.redisPassword, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return repo, func() { _ = repo.Close() }, nil

	case "memory":
		return repository.NewMemoryUserRepo(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q: want postgres, redis or memory", sf.store)
}

// serve обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("err", err))
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", slog.Any("err", err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
