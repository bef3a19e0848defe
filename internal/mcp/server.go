package mcp

import (
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string

	// Catalog, when set, has its tools registered on the server.
	Catalog *catalog.Service
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.Catalog != nil {
		catalog.RegisterTools(s, cfg.Catalog)
	}

	return s
}
