package inspector

import (
	"log/slog"
	"os"
)

// inspectorLogLevel controls the inspector's logging verbosity.
// SetVerbose(true) sets it to LevelDebug.
var inspectorLogLevel = new(slog.LevelVar)

var inspectorLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: inspectorLogLevel}))

// SetVerbose enables or disables debug logging of skipped rows.
func SetVerbose(v bool) {
	if v {
		inspectorLogLevel.Set(slog.LevelDebug)
	} else {
		inspectorLogLevel.Set(slog.LevelInfo)
	}
}

func inspectorVerbose() bool {
	return inspectorLogLevel.Level() <= slog.LevelDebug
}

// logSkip records why a row was omitted.
func logSkip(err error, f *Field, depth int) {
	if !inspectorVerbose() {
		return
	}
	name, kind := "", KindInvalid
	if f != nil {
		name, kind = f.Name, f.Kind
	}
	inspectorLogger.Debug("row skipped", "err", err, "field", name, "kind", kind, "depth", depth)
}
