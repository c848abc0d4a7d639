// Command specmcp runs the SpecMCP MCP server.
//
// It communicates over stdio (default) or streamable HTTP using JSON-RPC
// 2.0 (MCP protocol), serving a primitives catalog, a plan validator, and
// a compiler targeting the n8n workflow engine. There is no external
// persistence: the catalog is read from disk on demand and cached
// in-process for the life of the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maicrosoft/specmcp/internal/config"
	"github.com/maicrosoft/specmcp/internal/content"
	"github.com/maicrosoft/specmcp/internal/driver"
	"github.com/maicrosoft/specmcp/internal/mcp"
	"github.com/maicrosoft/specmcp/internal/registry"
	"github.com/maicrosoft/specmcp/internal/tools/plan"
	"github.com/maicrosoft/specmcp/internal/tools/primitives"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "specmcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a specmcp.toml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set up structured logging to stderr (stdout is for MCP protocol).
	logLevel := parseLogLevel(cfg.Log.Level)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	version := cfg.Server.Version
	if Version != "dev" {
		version = Version
	}

	primitivesDir, err := registry.FindPrimitivesDir(cfg.Registry.PrimitivesDir)
	if err != nil {
		return fmt.Errorf("locating primitives catalog: %w", err)
	}

	logger.Info("starting specmcp",
		"version", version,
		"transport", cfg.Transport.Mode,
		"primitives_dir", primitivesDir,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d := driver.New(primitivesDir)

	reg := mcp.NewRegistry()

	// Primitive catalog tools.
	reg.Register(primitives.NewList(d.Registry))
	reg.Register(primitives.NewGet(d.Registry))
	reg.Register(primitives.NewSearch(d.Registry))

	// Plan tools.
	reg.Register(plan.NewValidate(d))
	reg.Register(plan.NewCompile(d))

	// Prompts.
	reg.RegisterPrompt(&content.AuthorPrimitivePrompt{})
	reg.RegisterPrompt(&content.AuthorPlanPrompt{})

	// Resources.
	reg.RegisterResource(&content.PrimitiveModelResource{})
	reg.RegisterResource(&content.ValidationLayersResource{})
	reg.RegisterResource(&content.ToolReferenceResource{})

	server := mcp.NewServer(reg, mcp.ServerInfo{
		Name:    cfg.Server.Name,
		Version: version,
	}, logger)

	if cfg.Transport.Mode == "http" {
		return runHTTP(ctx, server, cfg, logger)
	}
	return server.Run(ctx)
}

func runHTTP(ctx context.Context, server *mcp.Server, cfg *config.Config, logger *slog.Logger) error {
	httpServer := mcp.NewHTTPServer(server, cfg.Transport.CORSOrigins, logger)

	addr := cfg.Transport.Host + ":" + cfg.Transport.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: httpServer.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http transport listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
