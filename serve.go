package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	applog "github.com/olgasafonova/mediawiki-delete-category/internal/log"
	"github.com/olgasafonova/mediawiki-delete-category/tools"
	"github.com/olgasafonova/mediawiki-delete-category/tracing"
	"github.com/olgasafonova/mediawiki-delete-category/wiki"
	"github.com/spf13/cobra"
)

// ServerName identifies the MCP server to clients
const ServerName = "mediawiki-delete-category"

// NewServeCmd creates the serve command, an MCP server on stdio.
func NewServeCmd() *cobra.Command {
	var (
		category   string
		reason     string
		debug      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cleanup as MCP tools over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing
mediawiki_preview_category and mediawiki_delete_category.

Deletions always run in automatic mode. Configure via environment variables:
- MEDIAWIKI_URL: Wiki API URL (required)
- MEDIAWIKI_USERNAME: Bot username
- MEDIAWIKI_PASSWORD: Bot password
- MEDIAWIKI_TIMEOUT, MEDIAWIKI_MAX_RETRIES, MEDIAWIKI_RATE_LIMIT,
  MEDIAWIKI_USER_AGENT: optional`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyConfigFile(cmd.Flags(), configPath); err != nil {
				return err
			}

			config, err := wiki.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// stdout carries the protocol, so logs go to stderr only
			logger := applog.NewSecureLogger(cmd.ErrOrStderr(), debug, config.Password)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			traceConfig := tracing.DefaultConfig(getVersion())
			traceConfig.Writer = cmd.ErrOrStderr()
			shutdown, err := tracing.Setup(ctx, traceConfig)
			if err != nil {
				return fmt.Errorf("failed to set up tracing: %w", err)
			}
			defer func() { _ = shutdown(cmd.Context()) }()

			client := wiki.NewClient(config, logger)
			defer client.Close()

			server := newMCPServer(tools.NewService(client, category, reason, logger), logger)

			logger.Info("Starting MCP server",
				"name", ServerName,
				"version", getVersion(),
				"wiki_url", config.BaseURL,
				"authenticated", config.HasCredentials(),
			)

			if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", defaultCategory, "category used when a call names none")
	cmd.Flags().StringVarP(&reason, "reason", "r", defaultReason, "deletion summary used when a call gives none")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with category and reason defaults")

	return cmd
}

// newMCPServer builds the server and registers every tool
func newMCPServer(service *tools.Service, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: getVersion(),
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Cleans up a MediaWiki deletion category.

Call mediawiki_preview_category first to see which members are unused and
which are still linked to or embedded. mediawiki_delete_category deletes the
unused ones and keeps the rest unless force is set.`,
	})

	tools.NewHandlerRegistry(service, logger).RegisterAll(server)
	return server
}
