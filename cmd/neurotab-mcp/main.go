// Command neurotab-mcp exposes stereotactic coordinate extraction as a
// Model Context Protocol tool: zerolog request logging, server.Hooks
// telemetry, and a typed tool handler registered against mcp-go.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/coregx/neurotab"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var useStdio bool
	flag.BoolVar(&useStdio, "stdio", false, "Run server over stdio transport")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "neurotab-mcp").Logger()

	srv := server.NewMCPServer(
		"neurotab coordinate extraction server",
		neurotab.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithHooks(buildHooks(logger)),
	)

	registerExtractCoordinatesTool(srv, logger)

	logger.Info().Bool("stdio", useStdio).Msg("server bootstrap configured")

	if !useStdio {
		fmt.Fprintln(os.Stderr, "no transport selected; use --stdio to run over stdio")
		os.Exit(2)
	}

	if err := server.ServeStdio(srv); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// buildHooks logs session lifecycle, tool calls, and request errors.
func buildHooks(logger zerolog.Logger) *server.Hooks {
	hooks := &server.Hooks{}

	hooks.AddOnRegisterSession(func(_ context.Context, session server.ClientSession) {
		logger.Info().Str("session_id", session.SessionID()).Msg("session registered")
	})

	hooks.AddOnUnregisterSession(func(_ context.Context, session server.ClientSession) {
		logger.Info().Str("session_id", session.SessionID()).Msg("session unregistered")
	})

	hooks.AddAfterCallTool(func(_ context.Context, _ any, req *mcp.CallToolRequest, _ *mcp.CallToolResult) {
		logger.Info().Str("tool", req.Params.Name).Msg("tool call served")
	})

	hooks.AddOnError(func(_ context.Context, _ any, method mcp.MCPMethod, _ any, err error) {
		logger.Error().Str("method", string(method)).Err(err).Msg("request error")
	})

	return hooks
}
