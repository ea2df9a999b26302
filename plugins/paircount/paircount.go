// Package paircount reports delimiter balance for the buffer. The
// ':pairs' command shows which bracket or quote kinds have unmatched
// occurrences; saving an unbalanced buffer leaves a note in the log.
//
// Counting is occurrence-based: crossed pairs like ")(" even out, and
// escaped or quoted delimiters are not special. It is a quick sanity
// check, not a parser.
package paircount

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/plugin"
)

var _ plugin.Plugin = (*PairCount)(nil)

// PairCount registers the ':pairs' command and the save-time check.
type PairCount struct {
	api plugin.EditorAPI
}

// New creates the plugin.
func New() plugin.Plugin {
	return &PairCount{}
}

func (p *PairCount) Name() string {
	return "paircount"
}

func (p *PairCount) Initialize(api plugin.EditorAPI) error {
	p.api = api

	if err := api.RegisterCommand("pairs", p.pairsCommand); err != nil {
		logger.Warnf("paircount: command registration: %v", err)
	}

	api.SubscribeEvent(event.TypeBufferSaved, func(e event.Event) bool {
		if report := countReport(p.bufferLines()); report != "" {
			logger.Infof("paircount: saved with unbalanced pairs: %s", report)
		}
		return false
	})
	return nil
}

func (p *PairCount) Shutdown() error {
	return nil
}

func (p *PairCount) bufferLines() [][]byte {
	lines, err := p.api.GetBufferLines(0, p.api.GetBufferLineCount())
	if err != nil {
		logger.Warnf("paircount: reading buffer: %v", err)
		return nil
	}
	return lines
}

func (p *PairCount) pairsCommand(args []string) error {
	report := countReport(p.bufferLines())
	if report == "" {
		p.api.SetStatusMessage("All pairs balanced")
	} else {
		p.api.SetStatusMessage("Unbalanced: %s", report)
	}
	return nil
}

// countReport tallies bracket and quote occurrences across lines and
// describes the imbalances, or returns "" when all kinds even out.
// Brackets report the open-minus-close difference; quotes report odd
// counts.
func countReport(lines [][]byte) string {
	brackets := []struct{ open, close byte }{
		{'(', ')'},
		{'[', ']'},
		{'{', '}'},
	}
	quotes := []byte{'"', '\'', '`'}

	var parts []string
	for _, b := range brackets {
		diff := 0
		for _, line := range lines {
			diff += bytes.Count(line, []byte{b.open})
			diff -= bytes.Count(line, []byte{b.close})
		}
		if diff > 0 {
			parts = append(parts, fmt.Sprintf("%c%c +%d", b.open, b.close, diff))
		} else if diff < 0 {
			parts = append(parts, fmt.Sprintf("%c%c %d", b.open, b.close, diff))
		}
	}

	for _, q := range quotes {
		n := 0
		for _, line := range lines {
			n += bytes.Count(line, []byte{q})
		}
		if n%2 != 0 {
			parts = append(parts, fmt.Sprintf("%c odd", q))
		}
	}

	return strings.Join(parts, ", ")
}
