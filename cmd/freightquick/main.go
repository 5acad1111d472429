package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"freightquick/internal/config"
	"freightquick/internal/server"
	"freightquick/internal/store"
)

var (
	// Global flags
	configPath string
	verbose    bool
	addr       string
	dbPath     string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "freightquick",
	Short: "FreightQuick - fleet management backend",
	Long: `FreightQuick is a multi-tenant fleet management backend for small
trucking carriers: drivers, loads, assignments and routes, compliance
tracking, driver pay, insurance, inspections, fuel logging and IFTA
quarterly reporting, served over an HTTP JSON API.

Run "freightquick serve" to start the API server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if addr != "" {
			cfg.Server.Addr = addr
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}

		zcfg := zap.NewProductionConfig()
		if cfg.Logging.Format == "console" {
			zcfg = zap.NewDevelopmentConfig()
		}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else if lvl, perr := zapcore.ParseLevel(cfg.Logging.Level); perr == nil {
			zcfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// serveCmd runs the HTTP API until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FreightQuick API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		if cfg.Database.Seed {
			if err := st.Seed(); err != nil {
				return fmt.Errorf("failed to seed store: %w", err)
			}
		}

		logger.Info("store ready", zap.String("path", cfg.Database.Path))

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, st, logger).Run(ctx)
	},
}

// initdbCmd creates the database schema and optional demo data without
// starting the server.
var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Initialize the database schema and demo fleet data",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		if cfg.Database.Seed {
			if err := st.Seed(); err != nil {
				return fmt.Errorf("failed to seed store: %w", err)
			}
		}

		stats, err := st.GetStats()
		if err != nil {
			return fmt.Errorf("failed to read store stats: %w", err)
		}
		logger.Info("database initialized",
			zap.String("path", cfg.Database.Path),
			zap.Any("stats", stats))
		return nil
	},
}

// configCmd writes the current configuration to the config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Wrote %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "freightquick.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initdbCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
