// pathfind loads tile collision data into PostgreSQL and answers route
// queries against it.
//
// Usage:
//
//	pathfind migrate                       - Apply database migrations
//	pathfind import <dump.json>            - Import a 64x64 collision dump
//	pathfind find --from x,z --to x,z      - Find a route on a stored level
//
// Global flags:
//
//	--config <path>  - YAML config (default: $TILEPATH_CONFIG or config/pathfind.yaml)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/udisondev/tilepath/internal/config"
	"github.com/udisondev/tilepath/internal/db"
)

const ConfigPath = "config/pathfind.yaml"

var flagConfig string

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathfind",
	Short: "Tile collision storage and route finding",
	Long: `pathfind keeps per-tile collision flags in PostgreSQL and runs
breadth-first route searches over them.

Examples:
  pathfind migrate
  pathfind import lumbridge.json --origin 3200,3200
  pathfind find --from 3232,3205 --to 3232,3215
  pathfind find --from 3232,3205 --to 3240,3210 --to 3220,3230 --size 2`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cfgPath := ConfigPath
	if p := os.Getenv("TILEPATH_CONFIG"); p != "" {
		cfgPath = p
	}
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", cfgPath, "Path to YAML config")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(findCmd)
}

// setup loads and validates the config and installs the default logger.
func setup() (config.Pathfinder, error) {
	cfg, err := config.LoadPathfinder(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", flagConfig, "window", cfg.Window, "node_budget", cfg.NodeBudget)
	return cfg, nil
}

// connect opens the database and applies pending migrations.
func connect(ctx context.Context, cfg config.Pathfinder) (*db.DB, error) {
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)
	return database, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		database, err := connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		database.Close()
		slog.Info("database migrations applied")
		return nil
	},
}
