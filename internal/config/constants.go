package config

import "time"

// Base application details
const AppName = "hem"
const ConfigDirName = "hem"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "hem.log"

// UI layout
const StatusBarHeight = 1

// Input behavior
const DefaultLeaderKey = ','
const SurroundInputTimeout = time.Second

// Status bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// Surround engine defaults
const DefaultNLines = 20
const DefaultSearchMethod = "cover"
const DefaultHighlightMs = 500
