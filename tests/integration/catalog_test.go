package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/app"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/tests/integration/testkit"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	imperativeURL = "http://localhost:5173/esolangs/Imperative"
	functionalURL = "http://localhost:5173/esolangs/Functional"
	jokeURL       = "http://localhost:5173/esolangs/Joke_language"
)

// searchQuery encodes the query the server is expected to send for the
// imperative paradigm plus term.
func searchQuery(term string) string {
	sel := catalog.NewSelection()
	sel.Select(catalog.Paradigm, imperativeURL)
	sel.SetSearchTerm(term)
	return catalog.EncodeQuery(sel)
}

func newCatalog() testkit.Catalog {
	results := make([]string, 0, 37)
	results = append(results, "Brainf***", "Befunge")
	for i := len(results); i < 37; i++ {
		results = append(results, fmt.Sprintf("Lang%02d", i+1))
	}

	return testkit.Catalog{
		Options: map[string][]string{
			"paradigm": {imperativeURL, functionalURL},
			"category": {jokeURL},
		},
		Results: map[string][]string{
			searchQuery("brain"): results,
		},
		All: []string{"Befunge", "Brainf***", "Ook!"},
		Records: map[string]domain.Language{
			"Brainf***": {Name: "Brainf***", YearCreated: "1993", Paradigms: []string{"Imperative"}},
			"Befunge":   {Name: "Befunge", YearCreated: "1993", Dimensions: []string{"Two-dimensional"}},
		},
		SimilarTo: map[string][]string{
			"Brainf***": {"Ook!", "Blub"},
		},
	}
}

// startBackend starts a catalog backend and returns it with its URL.
func startBackend(t *testing.T, c testkit.Catalog) (*testkit.BackendService, string) {
	t.Helper()

	backend := testkit.NewBackendService(c)
	env := testkit.NewTestEnv(backend)
	props, err := env.Start()
	if err != nil {
		t.Fatalf("Failed to start test env: %v", err)
	}
	t.Cleanup(func() {
		if err := env.Stop(); err != nil {
			t.Errorf("Failed to stop test env: %v", err)
		}
	})

	url, _ := props[testkit.PropBackendURL].(string)
	return backend, url
}

// runStdioServer runs the full server over an in-memory transport and
// returns a connected client session. The server stops with the test.
func runStdioServer(t *testing.T, backendURL string) *mcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	params := app.DefaultRunParams()
	params.CustomIOTransport = serverTransport

	flags := testkit.NewTestFlags(t, &testkit.FlagOptions{
		Transport:  "stdio",
		BackendURL: backendURL,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.RunWithDeps(ctx, params, flags, "test")
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("Client connect failed: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("Server did not stop")
		}
	})
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool %s failed: %v", name, err)
	}
	return extractTextContent(res), res.IsError
}

// ========================================
// MCP Server End To End
// ========================================

func TestStdioServer_FilterSearchPaginate(t *testing.T) {
	backend, url := startBackend(t, newCatalog())
	session := runStdioServer(t, url)

	text, isErr := callTool(t, session, "facet_options", map[string]any{"facet": "paradigm"})
	if isErr || !strings.Contains(text, "Imperative") || !strings.Contains(text, "Functional") {
		t.Fatalf("Unexpected facet options (error=%v): %s", isErr, text)
	}

	text, isErr = callTool(t, session, "select_filter", map[string]any{"facet": "paradigm", "value": "imperative"})
	if isErr || !strings.Contains(text, "Selected Paradigm 'Imperative'") {
		t.Fatalf("Unexpected select result (error=%v): %s", isErr, text)
	}

	_, _ = callTool(t, session, "set_search_term", map[string]any{"term": "brain"})

	text, isErr = callTool(t, session, "search_languages", map[string]any{})
	if isErr {
		t.Fatalf("Search failed: %s", text)
	}
	for _, want := range []string{"37 languages (page 1 of 3)", "1. Brainf***", "15. Lang15", "[1] 2 3"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in first page, got:\n%s", want, text)
		}
	}

	searches := countRequests(backend, "/api/esolangs/search/")

	text, _ = callTool(t, session, "search_languages", map[string]any{"page": 3})
	if !strings.Contains(text, "page 3 of 3") || !strings.Contains(text, "31. Lang31") || !strings.Contains(text, "37. Lang37") {
		t.Errorf("Unexpected last page:\n%s", text)
	}
	if got := countRequests(backend, "/api/esolangs/search/"); got != searches {
		t.Errorf("Expected paging to reuse results, got %d extra searches", got-searches)
	}

	text, _ = callTool(t, session, "search_languages", map[string]any{"page": 2, "width": 500})
	if !strings.Contains(text, "«") || strings.Contains(text, "First") {
		t.Errorf("Expected compact navigation for narrow viewport:\n%s", text)
	}
}

func TestStdioServer_NoResults(t *testing.T) {
	_, url := startBackend(t, newCatalog())
	session := runStdioServer(t, url)

	_, _ = callTool(t, session, "set_search_term", map[string]any{"term": "nothing"})

	text, isErr := callTool(t, session, "search_languages", map[string]any{})
	if isErr {
		t.Fatalf("Expected an empty result, not an error: %s", text)
	}
	if !strings.HasPrefix(text, "No results found") || !strings.Contains(text, "search_term=nothing") {
		t.Errorf("Unexpected empty result:\n%s", text)
	}
}

func TestStdioServer_DetailsAndSimilar(t *testing.T) {
	backend, url := startBackend(t, newCatalog())
	session := runStdioServer(t, url)

	text, isErr := callTool(t, session, "language_details", map[string]any{"name": "Brainf%2A%2A%2A"})
	if isErr || !strings.Contains(text, "# Brainf***") || !strings.Contains(text, "1993") {
		t.Fatalf("Unexpected details (error=%v): %s", isErr, text)
	}
	if !hasRequest(backend, "/api/esolangs/Brainf%2A%2A%2A") {
		t.Errorf("Expected the name to be encoded once, got requests %v", backend.Requests())
	}

	text, isErr = callTool(t, session, "language_details", map[string]any{"name": "Missing"})
	if !isErr || !strings.Contains(text, "Language not found") {
		t.Errorf("Expected not found error, got (error=%v): %s", isErr, text)
	}

	text, _ = callTool(t, session, "similar_languages", map[string]any{"name": "Brainf***"})
	if !strings.Contains(text, "Ook!") || !strings.Contains(text, "Blub") {
		t.Errorf("Unexpected similar languages:\n%s", text)
	}

	text, _ = callTool(t, session, "similar_languages", map[string]any{"name": "Befunge"})
	if !strings.Contains(text, "No similar languages found for Befunge") {
		t.Errorf("Unexpected similar result:\n%s", text)
	}
}

func TestStdioServer_Compare(t *testing.T) {
	_, url := startBackend(t, newCatalog())
	session := runStdioServer(t, url)

	text, _ := callTool(t, session, "compare_add", map[string]any{"name": "Ook!"})
	if !strings.Contains(text, catalog.ErrNeedTwo.Error()) {
		t.Errorf("Expected prompt for a second language:\n%s", text)
	}

	_, _ = callTool(t, session, "compare_add", map[string]any{"name": "Brainf%2A%2A%2A"})
	text, _ = callTool(t, session, "compare_add", map[string]any{"name": "Befunge"})
	if !strings.Contains(text, "Brainf***, Befunge") || strings.Contains(text, "Ook!") {
		t.Errorf("Expected the oldest entry to be evicted:\n%s", text)
	}

	text, isErr := callTool(t, session, "compare_languages", map[string]any{})
	if isErr {
		t.Fatalf("Compare failed: %s", text)
	}
	if !strings.Contains(text, "# Brainf***") || !strings.Contains(text, "# Befunge") {
		t.Errorf("Expected both languages side by side:\n%s", text)
	}
}

func TestStdioServer_ListLanguages(t *testing.T) {
	_, url := startBackend(t, newCatalog())
	session := runStdioServer(t, url)

	text, isErr := callTool(t, session, "list_languages", map[string]any{})
	if isErr || !strings.Contains(text, "All languages: 3 languages (page 1 of 1)") {
		t.Errorf("Unexpected listing (error=%v):\n%s", isErr, text)
	}
}

// ========================================
// SSE Transport
// ========================================

func TestSSEServer_HealthAndMetrics(t *testing.T) {
	_, url := startBackend(t, newCatalog())

	port := testkit.MustGetFreePort(t)
	flags := testkit.NewTestFlags(t, &testkit.FlagOptions{
		Port:       port,
		BackendURL: url,
		NoPreload:  true,
	})

	go func() {
		_ = app.RunWithDeps(context.Background(), app.DefaultRunParams(), flags, "test")
	}()

	base := fmt.Sprintf("http://localhost:%d", port)
	if err := waitForHealthy(base+"/health", 5*time.Second); err != nil {
		t.Fatalf("Server did not become healthy: %v", err)
	}

	resp, err := http.Get(base + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected metrics to be served, got status %d", resp.StatusCode)
	}
}

// ========================================
// Helper Functions
// ========================================

func waitForHealthy(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return errors.New("timed out")
}

func countRequests(backend *testkit.BackendService, prefix string) int {
	n := 0
	for _, uri := range backend.Requests() {
		if strings.HasPrefix(uri, prefix) {
			n++
		}
	}
	return n
}

func hasRequest(backend *testkit.BackendService, uri string) bool {
	for _, got := range backend.Requests() {
		if got == uri {
			return true
		}
	}
	return false
}

// extractTextContent extracts text from MCP result
func extractTextContent(result *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
