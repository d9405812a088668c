package cli

import (
	"log/slog"

	"github.com/careerloop/surveyflow/internal/logging"
)

// NewLogger creates the CLI logger. Debug mode lowers the level so the
// interpreter's configuration-defect warnings become visible.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
