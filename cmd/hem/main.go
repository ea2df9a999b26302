package main

import (
	"fmt"
	"os"

	"github.com/seagrine/hem/internal/app"
	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/logger"
)

// version is overridden at release time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var flags config.Flags
	args := flags.ParseFlags()

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// A broken config file falls back to defaults instead of refusing to
	// start; the editor is still the best place to fix it.
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v (continuing with defaults)\n", config.AppName, err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "%s: logger: %v\n", config.AppName, err)
		return 1
	}
	defer logger.Close()

	logger.Infof("Starting %s %s", config.AppName, version)
	if filePath != "" {
		logger.Debugf("Opening file: %s", filePath)
	} else {
		logger.Debugf("No file given, starting with an empty buffer")
	}

	hemApp, err := app.NewApp(filePath, cfg, &flags)
	if err != nil {
		logger.Errorf("Initialization failed: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	if err := hemApp.Run(); err != nil {
		logger.Errorf("Exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	logger.Infof("%s finished", config.AppName)
	return 0
}
