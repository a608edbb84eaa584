package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/MBoussel/patchrc/cmd/patchrc/opts"
	"github.com/MBoussel/patchrc/pkg/config"
	"github.com/MBoussel/patchrc/pkg/console"
)

var (
	// Flags
	configFile string
	workDir    string
	debug      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(cmd *cobra.Command) (*opts.RootOpts, error) {
	ctx := cmd.Context()

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	printer := console.New(os.Stdout, level)
	changes := console.NewChangeLogger(ctx)

	cfg, err := loadConfig(ctx, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if workDir != "" {
		cfg.WorkDir = filepath.Clean(workDir)
	}

	zerolog.Ctx(ctx).Debug().
		Str("config", cfg.String()).
		Str("config_hash", cfg.Hash()).
		Msg("configuration resolved")

	return &opts.RootOpts{
		Config:  cfg,
		Printer: printer,
		Changes: changes,
	}, nil
}

// loadConfig resolves the configuration for this invocation. An explicit
// --config must load; the default path is used when it exists; otherwise the
// built-in ruleset applies, so a bare `patchrc run` works in the repo the
// rules were written for.
func loadConfig(ctx context.Context, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(ctx, configFile)
	}
	if _, err := os.Stat(configFile); err == nil {
		return config.Load(ctx, configFile)
	}
	return config.Default(), nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".patchrc.yaml", "config file path")
	cmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "override the working directory")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
