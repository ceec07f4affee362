package persist

import (
	"log/slog"
	"os"
)

var persistLogLevel = new(slog.LevelVar)

var persistLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: persistLogLevel}))

// SetVerbose enables debug logging of skipped values and watch events.
func SetVerbose(v bool) {
	if v {
		persistLogLevel.Set(slog.LevelDebug)
	} else {
		persistLogLevel.Set(slog.LevelInfo)
	}
}
