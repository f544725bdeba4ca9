package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/fitz/cockpit/internal/mcp"
	"github.com/fitz/cockpit/internal/mcp/tools"
	"github.com/fitz/cockpit/internal/metrics"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server editing the cockpit",
	Long: `Start the Model Context Protocol (MCP) server that exposes the cockpit
editing operations as tools. By default it speaks JSON-RPC over stdio; with
--http it serves the streamable HTTP transport instead, with Prometheus
metrics on /metrics.

Every successful mutation is saved to the configured backend.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("http", false, "Run as HTTP server (default: stdio)")
	serveCmd.Flags().Int("port", 8080, "HTTP port to listen on (only used with --http)")
	serveCmd.Flags().Bool("wait", true, "Wait for Neo4j to be available (with retries)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	httpMode, _ := cmd.Flags().GetBool("http")
	port, _ := cmd.Flags().GetInt("port")
	wait, _ := cmd.Flags().GetBool("wait")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	be, err := openBackend(ctx, cfg, logger, wait)
	if err != nil {
		return err
	}
	defer be.close()

	store, err := openStore(ctx, cfg, be.repo, logger)
	if err != nil {
		return err
	}
	var saver tools.Saver
	if be.repo != nil {
		saver = be.repo
	}
	if !httpMode {
		server := mcpserver.NewServer(store, saver, nil, logger)
		fmt.Fprintf(os.Stderr, "MCP server started for cockpit: %s\n", store.ID())
		logger.Info("starting MCP server on stdio", "cockpit", store.ID())
		if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server error: %w", err)
		}
		logger.Info("server stopped")
		return nil
	}

	m := metrics.New()
	server := mcpserver.NewServer(store, saver, m, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.Handle("/", server.HTTPHandler())

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting HTTP server", "addr", addr, "cockpit", store.ID())
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
