package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomrelay/internal/app"
	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:           "roomrelay",
		Short:         "Real-time chat relay with rooms and live rosters",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLogger := log.New("info", "console")

			cfg, path, err := config.Load(bootLogger, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.UpdateFrom(overrides)

			logger := log.New(cfg.LogLevel, cfg.LogFormat)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting roomrelay")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.New(&cfg, logger).Run(ctx); err != nil {
				return fmt.Errorf("server exited with error: %w", err)
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to config.yaml (created with defaults if missing)")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&overrides.PublicDir, "public-dir", "", "directory with the browser client")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	return cmd
}
