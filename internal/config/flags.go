package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags. Pointer fields
// distinguish unset flags from zero values.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	TabWidth       *int
	ScrollOff      *int
	NLines         *int
	SearchMethod   *string
	HighlightMs    *int
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	DebugLog       *bool
	SystemClip     *bool
}

// DefineFlags registers the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - overrides config file")
	f.TabWidth = flag.Int("tabwidth", 0, "Number of spaces per tab - overrides config file")
	f.ScrollOff = flag.Int("scrolloff", -1, "Lines of context above/below cursor - overrides config file")
	f.NLines = flag.Int("nlines", 0, "Surround search window in lines above/below the cursor - overrides config file")
	f.SearchMethod = flag.String("method", "", "Surround search method (cover, cover_or_next, cover_or_prev, cover_or_nearest) - overrides config file")
	f.HighlightMs = flag.Int("highlight-duration", 0, "Surround highlight duration in milliseconds - overrides config file")
	f.EnableTags = flag.String("log-tags", "", "Comma-separated list of log tags to enable - overrides config file")
	f.DisableTags = flag.String("log-disable-tags", "", "Comma-separated list of log tags to disable - overrides config file")
	f.EnablePkgs = flag.String("log-packages", "", "Comma-separated list of packages to enable - overrides config file")
	f.DisablePkgs = flag.String("log-disable-packages", "", "Comma-separated list of packages to disable - overrides config file")
	f.EnableFiles = flag.String("log-files", "", "Comma-separated list of files to enable - overrides config file")
	f.DisableFiles = flag.String("log-disable-files", "", "Comma-separated list of files to disable - overrides config file")
	f.DebugLog = flag.Bool("debug-log", false, "Print log filter decisions to stderr")
	f.SystemClip = flag.Bool("system-clipboard", false, "Use the system clipboard instead of the internal register")
}

// ParseFlags defines and parses the flags, returning the remaining
// non-flag arguments (the file to open).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with values from flags that were explicitly
// set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "nlines":
			if *f.NLines >= 1 {
				cfg.Surround.NLines = *f.NLines
			}
		case "method":
			if ValidSearchMethod(*f.SearchMethod) {
				cfg.Surround.SearchMethod = *f.SearchMethod
			}
		case "highlight-duration":
			if *f.HighlightMs > 0 {
				cfg.Surround.HighlightDurationMs = *f.HighlightMs
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClip
		case "debug-log":
			cfg.Logger.FilterDebug = *f.DebugLog
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
