package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/fsnotify/fsnotify"
	"github.com/tidwall/pretty"

	"github.com/go-theft-auto/inspector"
)

// Save snapshots the value at ptr and writes it, indented, to path.
func Save(path string, p inspector.ReflectionProvider, t *inspector.Type, ptr unsafe.Pointer) error {
	doc, err := Snapshot(p, t, ptr)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pretty.Pretty(doc), 0o644); err != nil {
		return fmt.Errorf("persist: save: %w", err)
	}
	return nil
}

// Load reads path and restores it into the value at ptr.
func Load(path string, p inspector.ReflectionProvider, t *inspector.Type, ptr unsafe.Pointer) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("persist: load: %w", err)
	}
	return Restore(p, t, ptr, doc)
}

// Watch calls fn with the content of path each time the file is written or
// created, until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are seen too. fn runs on the calling
// goroutine.
func Watch(ctx context.Context, path string, fn func([]byte)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("persist: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("persist: watch %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("persist: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			data, err := os.ReadFile(abs)
			if err != nil {
				persistLogger.Warn("persist: reload failed", "path", abs, "err", err)
				continue
			}
			persistLogger.Debug("persist: reloaded", "path", abs, "bytes", len(data))
			fn(data)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			persistLogger.Warn("persist: watch error", "path", abs, "err", err)
		}
	}
}
