package app

import (
	"testing"
	"time"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/catalog"
	"github.com/spf13/pflag"
)

func TestRegisterFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	expectedFlags := []string{
		"transport",
		"host",
		"port",
		"backend-url",
		"backend-timeout",
		"page-size",
		"visible-pages",
		"compact-width",
		"max-parallel-loads",
		"preload",
	}

	for _, name := range expectedFlags {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
}

func TestRegisterFlags_Shorthand(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	shorthandFlags := map[string]string{
		"transport":   "t",
		"host":        "H",
		"port":        "p",
		"backend-url": "b",
	}

	for name, shorthand := range shorthandFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			t.Errorf("Flag %q not found", name)
			continue
		}
		if flag.Shorthand != shorthand {
			t.Errorf("Flag %q expected shorthand %q, got %q", name, shorthand, flag.Shorthand)
		}
	}
}

func TestRegisterFlags_SetValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	err := flags.Parse([]string{
		"--transport", "sse",
		"--port", "9090",
		"-b", "http://backend:8000",
		"--backend-timeout", "3s",
		"--preload=false",
	})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	transport, _ := flags.GetString("transport")
	if transport != "sse" {
		t.Errorf("Expected transport 'sse', got '%s'", transport)
	}

	port, _ := flags.GetInt("port")
	if port != 9090 {
		t.Errorf("Expected port 9090, got %d", port)
	}

	backendURL, _ := flags.GetString("backend-url")
	if backendURL != "http://backend:8000" {
		t.Errorf("Expected backend-url 'http://backend:8000', got '%s'", backendURL)
	}

	timeout, _ := flags.GetDuration("backend-timeout")
	if timeout != 3*time.Second {
		t.Errorf("Expected backend-timeout 3s, got %v", timeout)
	}

	preload, _ := flags.GetBool("preload")
	if preload {
		t.Error("Expected preload to be disabled")
	}
}

func TestRegisterSearchFlags_OnePerFacet(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterSearchFlags(flags)

	for _, f := range catalog.AllFacets() {
		if flags.Lookup(f.Endpoint()) == nil {
			t.Errorf("Expected flag %q for facet %s", f.Endpoint(), f)
		}
	}
	for _, name := range []string{"term", "page", "width"} {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
}

func TestSearchRequestFromFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterSearchFlags(flags)

	err := flags.Parse([]string{
		"--paradigm", "Imperative",
		"--paradigm", "Functional",
		"--year-created", "1993",
		"-q", "brain",
		"--page", "2",
		"--width", "500",
	})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	req, err := SearchRequestFromFlags(flags)
	if err != nil {
		t.Fatalf("SearchRequestFromFlags failed: %v", err)
	}

	if got := req.Filters[catalog.Paradigm]; len(got) != 2 || got[0] != "Imperative" || got[1] != "Functional" {
		t.Errorf("Unexpected paradigm filters: %v", got)
	}
	if got := req.Filters[catalog.YearCreated]; len(got) != 1 || got[0] != "1993" {
		t.Errorf("Unexpected year filters: %v", got)
	}
	if _, ok := req.Filters[catalog.Category]; ok {
		t.Error("Expected no entry for unset facets")
	}
	if req.Term != "brain" {
		t.Errorf("Expected term 'brain', got %q", req.Term)
	}
	if req.Page != 2 || req.Width != 500 {
		t.Errorf("Expected page 2 width 500, got page %d width %d", req.Page, req.Width)
	}
}

func TestSearchRequestFromFlags_Defaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterSearchFlags(flags)
	_ = flags.Parse(nil)

	req, err := SearchRequestFromFlags(flags)
	if err != nil {
		t.Fatalf("SearchRequestFromFlags failed: %v", err)
	}
	if len(req.Filters) != 0 || req.Term != "" || req.Page != 1 || req.Width != 0 {
		t.Errorf("Unexpected defaults: %+v", req)
	}
}

func TestSearchRequestFromFlags_Unregistered(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	if _, err := SearchRequestFromFlags(flags); err == nil {
		t.Error("Expected error when search flags are not registered")
	}
}
