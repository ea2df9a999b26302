package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
	logFile       *os.File
	initOnce      sync.Once
)

// Init configures the global logger from cfg. Safe to call more than once;
// only the first call takes effect. The log destination is cfg.LogFilePath,
// "-" for stderr, or a file under the user cache directory when empty.
func Init(cfg Config) error {
	var initErr error
	initOnce.Do(func() {
		cfg.process()
		logLevel.Set(cfg.level)

		output, file, err := openOutput(cfg.LogFilePath)
		if err != nil {
			initErr = err
			return
		}
		logFile = file

		opts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				switch a.Key {
				case slog.SourceKey:
					if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
						source.File = filepath.Base(source.File)
					}
				case slog.TimeKey:
					if t, ok := a.Value.Any().(time.Time); ok {
						a.Value = slog.StringValue(t.Format(time.TimeOnly))
					}
				}
				return a
			},
		}

		base := slog.NewTextHandler(output, opts)
		defaultLogger = slog.New(newFilteringHandler(base, &cfg))
	})
	return initErr
}

// openOutput resolves the configured path to a writer. The returned file is
// non-nil only when a file was opened.
func openOutput(path string) (io.Writer, *os.File, error) {
	if path == "-" {
		return os.Stderr, nil, nil
	}
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return os.Stderr, nil, nil
		}
		dir := filepath.Join(cacheDir, "hem")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory %q: %w", dir, err)
		}
		path = filepath.Join(dir, "hem.log")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", path, err)
	}
	return file, file, nil
}

// ensureInitialized installs a stderr fallback so logging before Init
// still works (tests, early startup failures).
func ensureInitialized() {
	if defaultLogger == nil {
		_ = Init(Config{LogLevel: "info", LogFilePath: "-"})
	}
}

// logRecord emits a record at the given level with the caller's PC so the
// filtering handler can resolve package and file. All exported wrappers
// call it directly; the skip count depends on that.
func logRecord(level slog.Level, tag, format string, args ...any) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip Callers, logRecord, and the wrapper
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	logRecord(slog.LevelDebug, "", format, args...)
}

// DebugTagf logs a formatted debug message carrying a filter tag, so noisy
// subsystems (e.g. "draw", "find") can be switched on and off.
func DebugTagf(tag, format string, args ...any) {
	logRecord(slog.LevelDebug, tag, format, args...)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	logRecord(slog.LevelInfo, "", format, args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	logRecord(slog.LevelWarn, "", format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	logRecord(slog.LevelError, "", format, args...)
}

// Fatalf logs at error level and exits the program.
func Fatalf(format string, args ...any) {
	logRecord(slog.LevelError, "", format, args...)
	Close()
	os.Exit(1)
}

// Get returns the configured *slog.Logger for callers that want the
// structured API directly.
func Get() *slog.Logger {
	ensureInitialized()
	return defaultLogger
}

// Close flushes and closes the log file, if one is open.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
