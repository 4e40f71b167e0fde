package mcp

import (
	"context"
	"log/slog"

	"github.com/rpggio/burstguard/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Record(ctx context.Context, identity string) (activity.Result, error)
	Check(ctx context.Context, identity string) (bool, error)
	History(ctx context.Context, identity string) ([]activity.Timestamp, error)
}

// Config contains server configuration.
type Config struct {
	Activity ActivityService
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "burstguard",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Activity)

	return server
}
