package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// tagKey is the slog attribute key carrying the filter tag.
const tagKey = "tag"

// filteringHandler wraps a base handler and drops records according to the
// tag, package, and file sets from the config. Disabled sets always win
// over enabled sets.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// verdict decides whether a key passes a disabled/enabled set pair.
// An empty (nil) enabled set allows everything not explicitly disabled.
func verdict(key string, disabled, enabled map[string]struct{}) bool {
	if disabled != nil {
		if _, found := disabled[key]; found {
			return false
		}
	}
	if enabled != nil {
		if _, found := enabled[key]; !found {
			return false
		}
	}
	return true
}

// Handle applies the filter rules and forwards surviving records to the
// base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.base.Handle(ctx, r)
	}

	pkg, file := recordSource(r)

	if pkg != "" && !verdict(strings.ToLower(pkg), h.cfg.disabledPackagesSet, h.cfg.enabledPackagesSet) {
		h.debugDrop("package", pkg, r)
		return nil
	}
	if file != "" && !verdict(strings.ToLower(file), h.cfg.disabledFilesSet, h.cfg.enabledFilesSet) {
		h.debugDrop("file", file, r)
		return nil
	}

	tag, hasTag := recordTag(r)
	if hasTag {
		if !verdict(tag, h.cfg.disabledTagsSet, h.cfg.enabledTagsSet) {
			h.debugDrop("tag", tag, r)
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Specific tags requested and this record has none.
		h.debugDrop("untagged", "", r)
		return nil
	}

	return h.base.Handle(ctx, r)
}

// recordSource extracts package and file names for a record, preferring the
// Source attribute and falling back to the record's PC.
func recordSource(r slog.Record) (pkg, file string) {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != slog.SourceKey {
			return true
		}
		if source, ok := a.Value.Any().(*slog.Source); ok && source != nil && source.File != "" {
			file = filepath.Base(source.File)
			pkg = filepath.Base(filepath.Dir(source.File))
		}
		return false
	})
	if file != "" || r.PC == 0 {
		return pkg, file
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File != "" {
		file = filepath.Base(frame.File)
		pkg = filepath.Base(filepath.Dir(frame.File))
	}
	return pkg, file
}

// recordTag returns the lowercase tag attribute of a record, if present.
func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != tagKey {
			return true
		}
		tag = strings.ToLower(a.Value.String())
		found = true
		return false
	})
	return tag, found
}

func (h *filteringHandler) debugDrop(reason, value string, r slog.Record) {
	if !h.cfg.FilterDebug {
		return
	}
	fmt.Fprintf(os.Stderr, "[logfilter] dropped (%s=%q): %s\n", reason, value, r.Message)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}
