package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/burstguard/internal/config"
	"github.com/rpggio/burstguard/internal/domain/activity"
	"github.com/rpggio/burstguard/internal/jsonfile"
	"github.com/rpggio/burstguard/internal/logging"
	"github.com/rpggio/burstguard/internal/mcp"
	"github.com/rpggio/burstguard/internal/sqlite"
	"github.com/rpggio/burstguard/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.ModeStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := logging.OpenFile(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := logging.New(logWriter, cfg.Log.Level)

	repo, closeRepo, err := openRepository(cfg.Storage)
	if err != nil {
		logger.Error("failed to open activity store", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	activitySvc := activity.NewService(repo, logger)

	switch cfg.Transport.Mode {
	case config.ModeStdio:
		runStdioMode(logger, mcp.NewServer(mcp.Config{Activity: activitySvc, Logger: logger}))
	case config.ModeHTTP:
		runHTTPMode(logger, activitySvc, cfg.Server.Host, cfg.Server.Port)
	default:
		runOnce(context.Background(), logger, activitySvc, cfg.Identity)
	}
}

func openRepository(cfg config.StorageConfig) (activity.Repository, func(), error) {
	if err := ensureDir(cfg.Path); err != nil {
		return nil, nil, fmt.Errorf("prepare storage path: %w", err)
	}

	if cfg.Backend != config.BackendSQLite {
		return jsonfile.NewActivityRepository(cfg.Path), func() {}, nil
	}

	db, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return sqlite.NewActivityRepository(db), func() { db.Close() }, nil
}

// runOnce records a single activity for identity and logs the outcome.
func runOnce(ctx context.Context, logger *slog.Logger, svc *activity.Service, identity string) activity.Result {
	res, err := svc.Record(ctx, identity)
	switch {
	case err == nil:
		logger.Info("activity recorded", "identity", identity, "timestamp", res.Timestamp)
	case errors.Is(err, activity.ErrRateLimitExceeded):
		logger.Warn("activity rejected", "identity", identity, "error", err)
	default:
		logger.Error("activity not recorded", "identity", identity, "outcome", res.Outcome, "error", err)
	}
	return res
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

func runHTTPMode(logger *slog.Logger, svc *activity.Service, host string, port int) {
	mcpServer := mcp.NewServer(mcp.Config{Activity: svc, Logger: logger})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(svc, mcpHandler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
