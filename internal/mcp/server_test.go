package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestCreateServer(t *testing.T) {
	cfg := ServerConfig{
		Name:    "test-server",
		Version: "1.0.0",
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created")
	}
}

func TestCreateServer_EmptyConfig(t *testing.T) {
	server := CreateServer(ServerConfig{})
	if server == nil {
		t.Fatal("Expected server to be created even with empty config")
	}
}

// connect runs server over an in-memory transport and returns a client session.
func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("Server connect failed: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("Client connect failed: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestCreateServer_WithoutCatalog(t *testing.T) {
	session := connect(t, CreateServer(ServerConfig{Name: "test-server", Version: "1.0.0"}))

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(res.Tools) != 0 {
		t.Errorf("Expected no tools without a catalog, got %d", len(res.Tools))
	}
}

func TestCreateServer_ToolsRegistered(t *testing.T) {
	backend := catalog.NewFakeBackend()
	svc := catalog.MustNewTestService(t, backend)

	session := connect(t, CreateServer(ServerConfig{
		Name:    "elan-mcp",
		Version: "1.0.0",
		Catalog: svc,
	}))

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}

	got := make(map[string]bool)
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, name := range []string{
		"list_facets", "facet_options", "select_filter", "deselect_filter",
		"set_search_term", "clear_search_term", "clear_filters", "show_filters",
		"search_languages", "list_languages", "language_details", "similar_languages",
		"compare_add", "compare_remove", "compare_languages",
	} {
		if !got[name] {
			t.Errorf("Expected tool %q to be registered", name)
		}
	}
}

func TestCreateServer_CallTool(t *testing.T) {
	backend := catalog.NewFakeBackend()
	backend.Results["paradigm=imperative"] = []string{"Brainfuck"}
	svc := catalog.MustNewTestService(t, backend)
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	session := connect(t, CreateServer(ServerConfig{Name: "elan-mcp", Version: "1.0.0", Catalog: svc}))
	ctx := context.Background()

	_, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "select_filter",
		Arguments: map[string]any{"facet": "paradigm", "value": "imperative"},
	})
	if err != nil {
		t.Fatalf("select_filter failed: %v", err)
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_languages",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("search_languages failed: %v", err)
	}
	if res.IsError {
		t.Fatal("Expected successful search")
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok || !strings.Contains(text.Text, "1. Brainfuck") {
		t.Errorf("Unexpected search output: %+v", res.Content)
	}
}

func callText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Unexpected %s content: %+v", name, res.Content)
	}
	return text.Text
}

func TestCreateServer_SessionsAreIsolated(t *testing.T) {
	backend := catalog.NewFakeBackend()
	backend.Options["category"] = []string{"http://host/esolangs/Joke"}
	svc := catalog.MustNewTestService(t, backend)
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	first := connect(t, CreateServer(ServerConfig{Name: "elan-mcp", Version: "1.0.0", Catalog: svc.NewSession()}))
	second := connect(t, CreateServer(ServerConfig{Name: "elan-mcp", Version: "1.0.0", Catalog: svc.NewSession()}))

	if got := callText(t, first, "select_filter", map[string]any{"facet": "category", "value": "joke"}); !strings.Contains(got, "Selected Category 'Joke'") {
		t.Fatalf("Unexpected select output: %s", got)
	}
	if got := callText(t, second, "show_filters", map[string]any{}); got != "No filters selected" {
		t.Errorf("Expected no filters in the second session, got: %s", got)
	}
	if got := callText(t, first, "show_filters", map[string]any{}); !strings.Contains(got, "- Category: Joke") {
		t.Errorf("Expected the first session to keep its filter, got: %s", got)
	}

	_ = callText(t, first, "compare_add", map[string]any{"name": "Brainfuck"})
	if got := callText(t, second, "compare_add", map[string]any{"name": "Befunge"}); !strings.Contains(got, "(2/2): Brainfuck, Befunge") {
		t.Errorf("Expected a comparison shared across sessions, got: %s", got)
	}
}
