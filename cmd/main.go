// Package main provides the CLI entrypoint for the URL shortener.
// It wires subcommands (shorten, serve, migrate, jwt), loads configuration, and initializes logging.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"shortener/internal/config"
	"shortener/pkg/logger"
	"shortener/pkg/shortclient/httpclient"
	"shortener/pkg/storage/postgres"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values, waits
// until the database answers and returns it along with a cleanup function to
// close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	if err = pgsql.WaitReady(ctx, cfg.Database.ConnectAttempts, cfg.Database.ConnectRetryDelay); err != nil {
		_ = pgsql.Close()
		logger.Fatal(ctx, "postgres is not reachable", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

const defaultConfigPath = "config.yml"

// configPath returns the value of -c/--config wherever it appears in args,
// the last occurrence winning. Arguments after "--" are not flags.
func configPath(args []string) string {
	path := defaultConfigPath
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return path
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				path = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			path = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c") && !strings.HasPrefix(arg, "--"):
			path = strings.TrimPrefix(strings.TrimPrefix(arg, "-c"), "=")
		}
	}

	return path
}

// getShortClient creates the client used to reach the shorten endpoint.
func getShortClient(cfg *config.Config) *httpclient.Client {
	return httpclient.New(&http.Client{Timeout: cfg.Client.Timeout}, httpclient.Options{
		Endpoint: cfg.Client.Endpoint,
		Token:    cfg.Client.Token,
	})
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "shortener",
		Short: "URL shortener service and client",
	}

	// there is no way to access flags before command execution in cobra.
	// the config path is read from os.Args by configPath; the flag is only
	// registered so cobra accepts it before or after the subcommand.
	rootCmd.PersistentFlags().StringP("config", "c", defaultConfigPath, "Config File Path")

	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		shortenCommand(cfg),
		serveCommand(cfg),
		migrateCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
