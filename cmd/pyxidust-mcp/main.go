package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	mcpadapter "pyxidust/internal/adapters/mcp"
	"pyxidust/internal/app"
	"pyxidust/internal/logger"
)

func main() {
	configFlag := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	svc, err := app.Load(*configFlag)
	if err != nil {
		fatal(logger.New(logger.Config{}), err)
	}
	defer svc.Close()

	mcpServer := server.NewMCPServer(
		"pyxidust-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	svc.Log.Info().Msg("serving MCP on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		svc.Close()
		fatal(svc.Log, err)
	}
}

func fatal(log zerolog.Logger, err error) {
	log.Error().Err(err).Msg("pyxidust-mcp")
	os.Exit(1)
}
