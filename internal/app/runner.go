package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/api"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/config"
	mcputil "github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/mcp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"
)

// ServerFactory returns the MCP server for one new client session.
type ServerFactory func() *mcp.Server

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(ServerFactory, *config.Settings) error
	CreateServer      func(*config.Settings) (ServerFactory, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// ConfigureLogging installs the stderr text handler as the default logger.
func ConfigureLogging() {
	// stdout carries the stdio transport
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ConfigureLogging()

	slog.Info("Starting ELAn MCP server", "version", version)
	config.Log(settings)

	newServer, cleanup, err := params.CreateServer(settings)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	if settings.Transport == config.TransportStdio {
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return newServer().Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(newServer, settings)
}

// NewCatalogService creates a catalog service talking to the configured
// backend. The caller owns the returned service and must Close it.
func NewCatalogService(settings *config.Settings, opts ...catalog.ServiceOption) (*catalog.Service, error) {
	client, err := api.NewClient(settings.Backend.BaseURL, api.WithTimeout(settings.Backend.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	svc, err := catalog.NewService(&settings.Catalog, client, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}
	return svc, nil
}

// CreateMCPServer initializes the shared catalog service and returns a
// factory building one MCP server per client session. Sessions share facet
// options and the comparison set; filters and search results are per
// session.
func CreateMCPServer(settings *config.Settings) (ServerFactory, func(), error) {
	svc, err := NewCatalogService(settings)
	if err != nil {
		return nil, nil, err
	}

	// Not tied to a request context
	if err := svc.Initialize(context.Background()); err != nil {
		if closeErr := svc.Close(); closeErr != nil {
			slog.Error("Failed to close catalog service", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("failed to initialize catalog service: %w", err)
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			slog.Error("Failed to close catalog service", "error", err)
		}
	}

	factory := func() *mcp.Server {
		return mcputil.CreateServer(mcputil.ServerConfig{
			Name:    "elan-mcp",
			Version: "1.0.0",
			Catalog: svc.NewSession(),
		})
	}

	return factory, cleanup, nil
}
