package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mailsense/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the email-insight tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewServer(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Serve(ctx)
		}()

		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case err := <-errCh:
			return err
		}
	},
}
