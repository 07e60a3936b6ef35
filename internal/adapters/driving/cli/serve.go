package cli

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/numen-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/numen-cli/internal/logger"
)

var (
	serveAddr    string
	serveMCPAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API for web and mobile clients.

Routes:
  GET  /api/health          service status
  POST /api/report          numerology report
  POST /api/oracle/roll     dice oracle
  GET  /api/posts           blog posts (?tag= to filter)
  GET  /api/posts/:slug     one post
  POST /api/chat            numerology assistant
  POST /api/email           email a report
  GET  /metrics             Prometheus metrics

When a blog directory is configured it is watched and reloaded on change.
Use --mcp-addr to also serve MCP over HTTP from the same process.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().StringVar(&serveMCPAddr, "mcp-addr", "", "also serve MCP over HTTP on this address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if numerologyService == nil {
		return errors.New("numerology service not configured")
	}

	cfg := httpapi.Config{}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cfg = httpapi.ConfigFromSettings(settings.Server)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Numerology: numerologyService,
		Oracle:     oracleService,
		Blog:       blogService,
		Chat:       chatService,
		Email:      emailService,
	}, cfg)
	if err != nil {
		return err
	}

	var mcpServer *mcp.Server
	if serveMCPAddr != "" {
		if mcpServer, err = newMCPServer(); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	cmd.Printf("HTTP API listening on %s\n", server.Addr())
	g.Go(func() error { return server.Run(ctx) })

	if mcpServer != nil {
		cmd.Printf("MCP server listening on %s\n", serveMCPAddr)
		g.Go(func() error { return mcpServer.RunHTTP(ctx, serveMCPAddr) })
	}

	if blogWatcher != nil {
		g.Go(func() error { return blogWatcher.Run(ctx) })
	}

	return g.Wait()
}
