package testkit

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/app"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/domain"
	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"
)

// Service represents a test service that can be started and stopped
type Service interface {
	Start() (map[string]any, error)
	Stop() error
	GetName() string
}

// TestEnvContext provides access to properties collected during environment startup
type TestEnvContext interface {
	GetProperties() map[string]any
	GetProperty(name string) (any, bool)
}

// TestEnv manages the lifecycle of test services
type TestEnv interface {
	Start() (map[string]any, error)
	Stop() error
	GetContext() TestEnvContext
}

type testEnvContext struct {
	properties map[string]any
}

func (c *testEnvContext) GetProperties() map[string]any {
	return c.properties
}

func (c *testEnvContext) GetProperty(name string) (any, bool) {
	val, ok := c.properties[name]
	return val, ok
}

type testEnv struct {
	services []Service
	context  *testEnvContext
}

// NewTestEnv creates a new test environment with the given services
func NewTestEnv(services ...Service) TestEnv {
	return &testEnv{
		services: services,
		context:  &testEnvContext{properties: make(map[string]any)},
	}
}

// Start starts services in order and merges their properties. Later
// services override keys set by earlier ones.
func (e *testEnv) Start() (map[string]any, error) {
	for _, s := range e.services {
		props, err := s.Start()
		if err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", s.GetName(), err)
		}
		for k, v := range props {
			e.context.properties[k] = v
		}
	}
	return e.context.properties, nil
}

// Stop stops services in reverse order and returns the last error.
func (e *testEnv) Stop() error {
	var lastErr error
	for i := len(e.services) - 1; i >= 0; i-- {
		if err := e.services[i].Stop(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (e *testEnv) GetContext() TestEnvContext {
	return e.context
}

// PropBackendURL is the property under which BackendService publishes its
// base URL.
const PropBackendURL = "backend_url"

// Catalog is the data served by BackendService. Keys of Records and
// SimilarTo are decoded language names; keys of Results are raw query
// strings exactly as sent by the client.
type Catalog struct {
	Options   map[string][]string
	Results   map[string][]string
	All       []string
	Records   map[string]domain.Language
	SimilarTo map[string][]string
}

// BackendService is an HTTP catalog backend answering the same routes as
// the real one. Unknown entries answer 404 with a JSON detail.
type BackendService struct {
	catalog Catalog

	mu       sync.Mutex
	requests []string
	server   *httptest.Server
}

// NewBackendService creates a backend serving c.
func NewBackendService(c Catalog) *BackendService {
	return &BackendService{catalog: c}
}

func (b *BackendService) GetName() string {
	return "catalog-backend"
}

// Start starts the HTTP server and publishes PropBackendURL.
func (b *BackendService) Start() (map[string]any, error) {
	b.server = httptest.NewServer(b.routes())
	return map[string]any{PropBackendURL: b.server.URL}, nil
}

// Stop shuts the HTTP server down.
func (b *BackendService) Stop() error {
	if b.server != nil {
		b.server.Close()
	}
	return nil
}

// Requests returns the request URIs received so far.
func (b *BackendService) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *BackendService) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.requests = append(b.requests, req.RequestURI)
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/api/esolangs", func(w http.ResponseWriter, req *http.Request) {
		writeList(w, b.catalog.All, b.catalog.All != nil)
	})
	r.Get("/api/esolangs/search/", func(w http.ResponseWriter, req *http.Request) {
		ids, ok := b.catalog.Results[req.URL.RawQuery]
		writeList(w, ids, ok)
	})
	r.Get("/api/esolangs/similar/{name}", func(w http.ResponseWriter, req *http.Request) {
		ids, ok := b.catalog.SimilarTo[pathParam(req, "name")]
		writeList(w, ids, ok)
	})
	r.Get("/api/esolangs/{name}", func(w http.ResponseWriter, req *http.Request) {
		lang, ok := b.catalog.Records[pathParam(req, "name")]
		if !ok {
			writeNotFound(w)
			return
		}
		writeJSON(w, lang)
	})
	r.Get("/api/{facet}", func(w http.ResponseWriter, req *http.Request) {
		options, ok := b.catalog.Options[chi.URLParam(req, "facet")]
		writeList(w, options, ok)
	})
	return r
}

// pathParam returns a decoded path parameter. chi matches on the raw path
// when one is present.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func writeList(w http.ResponseWriter, ids []string, ok bool) {
	if !ok || len(ids) == 0 {
		writeNotFound(w)
		return
	}
	writeJSON(w, ids)
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"detail":"No data found"}`))
}

// GetFreePort returns a free port from the kernel
func GetFreePort() (int, error) {
	return getFreePortWithAddr("localhost:0")
}

// MustGetFreePort returns a free port or fails the test
func MustGetFreePort(t testing.TB) int {
	t.Helper()
	port, err := GetFreePort()
	if err != nil {
		t.Fatalf("Failed to get free port: %v", err)
	}
	return port
}

func getFreePortWithAddr(addrStr string) (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", addrStr)
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// FlagOptions configures NewTestFlags
type FlagOptions struct {
	Port       int    // Uses free port if 0
	Transport  string // Defaults to "sse"
	Host       string // Defaults to "localhost"
	BackendURL string // Left unset if empty
	NoPreload  bool
}

// NewTestFlags creates a configured pflag.FlagSet for testing
func NewTestFlags(t testing.TB, opts *FlagOptions) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	app.RegisterFlags(flags)

	o := FlagOptions{Transport: "sse", Host: "localhost"}
	if opts != nil {
		if opts.Port != 0 {
			o.Port = opts.Port
		}
		if opts.Transport != "" {
			o.Transport = opts.Transport
		}
		if opts.Host != "" {
			o.Host = opts.Host
		}
		o.BackendURL = opts.BackendURL
		o.NoPreload = opts.NoPreload
	}

	if o.Port == 0 {
		o.Port = MustGetFreePort(t)
	}

	_ = flags.Set("port", fmt.Sprintf("%d", o.Port))
	_ = flags.Set("transport", o.Transport)
	_ = flags.Set("host", o.Host)
	if o.BackendURL != "" {
		_ = flags.Set("backend-url", o.BackendURL)
	}
	if o.NoPreload {
		_ = flags.Set("preload", "false")
	}

	return flags
}
