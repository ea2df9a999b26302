// Package commands registers the built-in ':' commands.
package commands

import (
	"fmt"
	"strings"

	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/plugin"
)

// AppAPI is the app surface the built-in commands drive beyond the
// plugin API: quitting and runtime option changes.
type AppAPI interface {
	RequestQuit(force bool)
	SetOption(name, value string) error
}

// RegisterAppCommands registers every built-in command.
func RegisterAppCommands(api plugin.EditorAPI, themeAPI ThemeAPI, appAPI AppAPI) {
	RegisterFileCommands(api, appAPI)
	RegisterThemeCommands(api, themeAPI)
	RegisterOptionCommands(api, appAPI)
	RegisterSurroundCommands(api)
}

// register logs a failed registration instead of failing startup; a
// plugin may have claimed the name first.
func register(api plugin.EditorAPI, name string, cmdFunc plugin.CommandFunc) {
	if err := api.RegisterCommand(name, cmdFunc); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}

// RegisterFileCommands registers :w, :q, :q! and :wq.
func RegisterFileCommands(api plugin.EditorAPI, appAPI AppAPI) {
	writeCmdFunc := func(args []string) error {
		var path []string
		if len(args) > 0 {
			path = []string{strings.Join(args, " ")}
		}
		if err := api.SaveBuffer(path...); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
		target := api.GetBufferFilePath()
		if target == "" {
			target = "[No Name]"
		}
		api.SetStatusMessage("Wrote %s", target)
		return nil
	}

	register(api, "w", writeCmdFunc)
	register(api, "q", func(args []string) error {
		appAPI.RequestQuit(false)
		return nil
	})
	register(api, "q!", func(args []string) error {
		appAPI.RequestQuit(true)
		return nil
	})
	register(api, "wq", func(args []string) error {
		if err := writeCmdFunc(args); err != nil {
			return err
		}
		appAPI.RequestQuit(false)
		return nil
	})
}

// RegisterThemeCommands registers :theme and :themes.
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // theme names may contain spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme %q not found. Available: %s", themeName, strings.Join(themeAPI.ListThemes(), ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	register(api, "theme", themeCmdFunc)
	register(api, "themes", themeListCmdFunc)
}

// RegisterOptionCommands registers :set for the runtime-tunable
// surround options (nlines, method, highlight).
func RegisterOptionCommands(api plugin.EditorAPI, appAPI AppAPI) {
	setCmdFunc := func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: set option=value (nlines, method, highlight)")
		}
		for _, arg := range args {
			name, value, found := strings.Cut(arg, "=")
			if !found || name == "" || value == "" {
				return fmt.Errorf("malformed option %q, want option=value", arg)
			}
			if err := appAPI.SetOption(name, value); err != nil {
				return err
			}
			api.SetStatusMessage("Set %s = %s", name, value)
		}
		return nil
	}

	register(api, "set", setCmdFunc)
}

// RegisterSurroundCommands registers :surroundings, which lists the
// registered identifiers.
func RegisterSurroundCommands(api plugin.EditorAPI) {
	register(api, "surroundings", func(args []string) error {
		api.SetStatusMessage("Surroundings: %s", strings.Join(api.ListSurroundings(), " "))
		return nil
	})
}
