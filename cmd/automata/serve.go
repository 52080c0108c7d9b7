package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/logging"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the automata and persisted simulation sessions as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		debug, _ := cmd.Flags().GetBool("debug")
		logger := logging.NewJSON(cmd.ErrOrStderr(), logging.Level(debug))

		promRegistry := prometheus.NewRegistry()
		promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := observability.NewMetrics(promRegistry)
		if err != nil {
			return fail("%v", err)
		}

		svc, closeFn, err := newService(cmd, observability.Chain(metrics.Hooks(), observability.LoggingHooks(logger)))
		if err != nil {
			return fail("%v", err)
		}
		defer closeFn()

		handler := httpAdapter.NewHandler(svc,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMaxSteps(maxSteps(cmd)),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})),
		)
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting automata server", "address", srv.Addr, "automata", len(svc.Registry().Names()))
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fail("server error: %v", err)
		case <-cmd.Context().Done():
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				_ = srv.Close()
			}
			logger.Info("automata server stopped gracefully")
			return nil
		}
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the simulator as MCP tools (list_automata, start_session, step,
get_trace, end_session) for AI agents.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		debug, _ := cmd.Flags().GetBool("debug")

		// Stdout carries JSON-RPC.
		logger := logging.New(logging.Level(debug))

		svc, closeFn, err := newService(cmd, observability.LoggingHooks(logger))
		if err != nil {
			return fail("%v", err)
		}
		defer closeFn()
		srv := mcp.NewServer(svc, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			logger.Info("starting automata MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				return fail("MCP server execution failed: %v", err)
			}
		case "sse":
			if err := srv.ServeSSE(cmd.Context(), port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fail("MCP server execution failed: %v", err)
			}
			logger.Info("MCP server stopped gracefully")
		default:
			return fail("unknown transport: %s. Supported: stdio, sse", transport)
		}
		return nil
	},
}

func newService(cmd *cobra.Command, hooks domain.LifecycleHooks) (*session.Service, func() error, error) {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("loading definitions: %w", err)
	}
	manager, closeFn, err := openManager(cmd)
	if err != nil {
		return nil, nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	svc := session.NewService(manager, reg,
		session.WithHooks(hooks),
		session.WithServiceLogger(cli.NewLogger(debug)),
	)
	return svc, closeFn, nil
}

func init() {
	rootCmd.AddCommand(serveCmd, mcpCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
