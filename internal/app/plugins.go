package app

import (
	"fmt"

	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/plugin"

	"github.com/seagrine/hem/plugins/autosave"
	"github.com/seagrine/hem/plugins/markdownpairs"
	"github.com/seagrine/hem/plugins/paircount"
)

// registerPlugins registers the compiled-in plugins. Adding a plugin
// means adding its constructor here.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	pluginConstructors := []func() plugin.Plugin{
		markdownpairs.New,
		paircount.New,
		autosave.New,
	}

	var firstErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrapped := fmt.Errorf("failed to register plugin %q: %w", p.Name(), err)
			logger.Errorf("%v", wrapped)
			if firstErr == nil {
				firstErr = wrapped
			}
		}
	}

	return firstErr
}
