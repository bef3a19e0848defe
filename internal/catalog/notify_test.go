package catalog

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogNotifier_Messages(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	n.SearchStarted("q")
	n.SearchSucceeded("q", 3)
	n.SearchEmpty("q")
	n.SearchFailed("q", errors.New("boom"))

	output := buf.String()
	for _, want := range []string{
		"Request is being processed...",
		"Search successful",
		"results=3",
		"No results found",
		"Error: Languages not found",
		"level=ERROR",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestNewLogNotifier_NilLogger(t *testing.T) {
	if n := NewLogNotifier(nil); n.logger == nil {
		t.Error("Expected default logger")
	}
}
