package main

import (
	"context"

	"github.com/spf13/cobra"

	"perfgate/internal/logging"
	mcpserver "perfgate/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio for editor integration",
	Long: `Starts an MCP server over stdin/stdout exposing the feedback tools
(run_feedback, get_trends, compare_baseline, get_status).

The server monitors for parent process death. When the editor disconnects or
restarts its extension host, the server self-terminates to prevent zombie
processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv := mcpserver.NewServer(cfg)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchStdin(ctx, nil, cancel)

	logging.New("mcp").Info("starting perfgate MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
