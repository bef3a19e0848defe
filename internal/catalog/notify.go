package catalog

import (
	"log/slog"
)

// Notifier receives the transient search notifications a user would see.
type Notifier interface {
	SearchStarted(query string)
	SearchSucceeded(query string, count int)
	SearchEmpty(query string)
	SearchFailed(query string, err error)
}

// LogNotifier writes search notifications to a slog logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier. A nil logger selects slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SearchStarted(query string) {
	n.logger.Info("Request is being processed...", "query", query)
}

func (n *LogNotifier) SearchSucceeded(query string, count int) {
	n.logger.Info("Search successful", "query", query, "results", count)
}

func (n *LogNotifier) SearchEmpty(query string) {
	n.logger.Info("No results found", "query", query)
}

func (n *LogNotifier) SearchFailed(query string, err error) {
	n.logger.Error("Error: "+ErrLanguagesNotFound.Error(), "query", query, "error", err)
}
