// Package markdownpairs registers Markdown emphasis surroundings:
// 'B' for **strong**, 'U' for __strong__ and '~' for ~~strikethrough~~.
// Single-character emphasis like *em* and _em_ already works through the
// symmetric fallback, so only the two-character delimiters need specs.
//
// Disable with:
//
//	[plugins.markdownpairs]
//	enabled = false
package markdownpairs

import (
	"fmt"
	"strings"

	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/plugin"
	"github.com/seagrine/hem/internal/surround"
)

var _ plugin.Plugin = (*MarkdownPairs)(nil)

// pairDef couples an identifier with its spec and a short listing label.
type pairDef struct {
	id    string
	label string
	spec  surround.CustomSpec
}

// defs are the registered pairs. The find patterns are lazy so adjacent
// emphasis spans on one line stay separate matches.
var defs = []pairDef{
	{
		id:    "B",
		label: "B=**",
		spec: surround.CustomSpec{
			OutputLeft:  "**",
			OutputRight: "**",
			Find:        `\*\*.*?\*\*`,
			Extract:     `^(\*\*).*?(\*\*)$`,
		},
	},
	{
		id:    "U",
		label: "U=__",
		spec: surround.CustomSpec{
			OutputLeft:  "__",
			OutputRight: "__",
			Find:        `__.*?__`,
			Extract:     `^(__).*?(__)$`,
		},
	},
	{
		id:    "~",
		label: "~=~~",
		spec: surround.CustomSpec{
			OutputLeft:  "~~",
			OutputRight: "~~",
			Find:        `~~.*?~~`,
			Extract:     `^(~~).*?(~~)$`,
		},
	},
}

// MarkdownPairs registers the emphasis surroundings and the ':mdpairs'
// listing command.
type MarkdownPairs struct {
	api        plugin.EditorAPI
	registered []string
}

// New creates the plugin.
func New() plugin.Plugin {
	return &MarkdownPairs{}
}

func (p *MarkdownPairs) Name() string {
	return "markdownpairs"
}

func (p *MarkdownPairs) Initialize(api plugin.EditorAPI) error {
	p.api = api

	if v, ok := api.GetPluginConfigValue(p.Name(), "enabled"); ok {
		if b, isBool := v.(bool); isBool && !b {
			logger.Infof("markdownpairs: disabled by config")
			return nil
		}
	}

	for _, def := range defs {
		if err := api.RegisterSurrounding(def.id, def.spec); err != nil {
			return fmt.Errorf("markdownpairs: register %q: %w", def.id, err)
		}
		p.registered = append(p.registered, def.label)
	}

	if err := api.RegisterCommand("mdpairs", p.listCommand); err != nil {
		logger.Warnf("markdownpairs: command registration: %v", err)
	}
	return nil
}

func (p *MarkdownPairs) Shutdown() error {
	return nil
}

// listCommand shows which identifiers the plugin claimed.
func (p *MarkdownPairs) listCommand(args []string) error {
	if len(p.registered) == 0 {
		p.api.SetStatusMessage("markdownpairs: disabled")
		return nil
	}
	p.api.SetStatusMessage("Markdown pairs: %s", strings.Join(p.registered, ", "))
	return nil
}
