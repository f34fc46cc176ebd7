package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator/internal/config"
	"github.com/zephyrtronium/calculator/internal/logging"
	"github.com/zephyrtronium/calculator/internal/server"
)

func newServeCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return fail(cmd, err)
			}
			logger, err := logging.New(cfg.Logger)
			if err != nil {
				return fail(cmd, err)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := server.New(cfg, logger, nil).ListenAndServe(ctx); err != nil {
				logger.WithError(err).Error("server stopped")
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (yaml, json, or toml)")
	return cmd
}
