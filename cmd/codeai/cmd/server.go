package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bargom/codeai/internal/server"
	"github.com/bargom/codeai/internal/shutdown"
	"github.com/bargom/codeai/internal/shutdown/hooks"
)

var serverAddr string

// newServerCmd creates the server command.
func newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the analyzer as an HTTP service",
		Long: `Start an HTTP server exposing /v1/parse, /v1/validate, and
/v1/transpile, plus /healthz and a Prometheus /metrics endpoint.
Shuts down gracefully on SIGTERM/SIGINT/SIGQUIT.`,
		RunE: runServer,
	}

	cmd.Flags().StringVar(&serverAddr, "addr", ":8080", "address to listen on")

	return cmd
}

func runServer(cmd *cobra.Command, args []string) error {
	serverLog := log.WithModule("server")
	router := server.NewRouter(serverLog, metricsRegistry)
	srv := server.New(router, serverAddr)

	mgr := shutdown.NewManager(shutdown.DefaultConfig(), serverLog.Logger)
	mgr.RegisterHook(hooks.HTTPServerShutdown(srv, mgr.Config().DrainTimeout))
	mgr.ListenForSignals()

	serverLog.Info("starting server", "addr", serverAddr)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	mgr.Wait()
	return nil
}
