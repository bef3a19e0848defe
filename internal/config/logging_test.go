package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLog(t *testing.T) {
	// Just verify it doesn't panic
	Log(validSettings())
}

func TestLogWithLogger_StdioTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogWithLogger(validSettings(), logger)

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	// stdio transport should not log host/port
	if strings.Contains(output, "Config: host") {
		t.Error("Expected no host in log output for stdio transport")
	}
	if !strings.Contains(output, "backend.base_url") {
		t.Error("Expected 'backend.base_url' in log output")
	}
	if strings.Contains(output, "backend.timeout") {
		t.Error("Expected no timeout line when timeout is disabled")
	}
}

func TestLogWithLogger_SSETransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings()
	s.Transport = TransportSSE
	s.Backend.Timeout = 3 * time.Second

	LogWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "Config: host") {
		t.Error("Expected host in log output for SSE transport")
	}
	if !strings.Contains(output, "Config: port") {
		t.Error("Expected port in log output for SSE transport")
	}
	if !strings.Contains(output, "backend.timeout") {
		t.Error("Expected timeout line when timeout is set")
	}
}

func TestLogWithLogger_PreloadDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings()
	s.Catalog.Preload = false

	LogWithLogger(s, logger)

	if strings.Contains(buf.String(), "max_parallel_loads") {
		t.Error("Expected no parallel loads line when preload is disabled")
	}
}

func TestSettingsLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("settings", "settings", SettingsLogValue(*validSettings()))

	output := buf.String()
	for _, want := range []string{
		"settings.transport=stdio",
		"settings.backend.base_url=http://localhost:8000",
		"settings.catalog.page_size=15",
		"settings.catalog.preload=true",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}
