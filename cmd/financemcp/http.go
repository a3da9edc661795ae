package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seenimoa/financemcp/api"
)

// --- Serve HTTP Command ---

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Serve the finance tools over an HTTP JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.API.Addr()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := api.NewServer(svc, api.Options{
			Version:     version,
			CORSOrigins: cfg.API.CORSOrigins,
			Logger:      logger,
		})
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveHTTPCmd.Flags().String("addr", "", "listen address (default: api.host:api.port)")
}
