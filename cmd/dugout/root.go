// Copyright (c) 2026 Dugout. All rights reserved.

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dugoutlab/dugout/internal/platform/config"
	"github.com/dugoutlab/dugout/internal/platform/constants"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "dugout",
	Short:         "Player development API for baseball and softball coaches",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize first so that subsequent startup errors are structured JSON.
		log = newLogger(slog.LevelInfo)
		slog.SetDefault(log)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		if cfg.Debug {
			log = newLogger(slog.LevelDebug)
			slog.SetDefault(log)
			log.Debug("debug_logging_enabled")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// newLogger builds the JSON logger every entry of which carries app=dugout-api.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}
