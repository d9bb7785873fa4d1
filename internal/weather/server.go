package weather

import (
	"context"
	"log"
	"os"

	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "weather"
	ServerVersion = "1.0.0"
)

// NewServer registers get_alerts and get_forecast on a new MCP server.
func NewServer(tools *Tools) *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddBeforeCallTool(func(ctx context.Context, id any, req *mcp.CallToolRequest) {
		logger.InfoX(moduleName, "[Server] call %s (request %v)", req.Params.Name, id)
	})

	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)

	s.AddTool(AlertsTool(), tools.handleAlerts)
	s.AddTool(ForecastTool(), tools.handleForecast)
	return s
}

// ServeStdio serves s on the process's stdin/stdout until ctx is done or
// stdin closes. Protocol errors go to the process logger.
func ServeStdio(ctx context.Context, s *server.MCPServer) error {
	w := logger.Writer()
	defer w.Close()

	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(w, "", 0))

	logger.InfoX(moduleName, "[Server] %s %s serving on stdio", ServerName, ServerVersion)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}
