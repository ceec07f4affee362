package imgui

import (
	"log/slog"
	"os"
)

var guiLogLevel = new(slog.LevelVar)

var guiLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel}))

// SetVerbose enables debug logging of widget activation and popups.
func SetVerbose(v bool) {
	if v {
		guiLogLevel.Set(slog.LevelDebug)
	} else {
		guiLogLevel.Set(slog.LevelInfo)
	}
}
