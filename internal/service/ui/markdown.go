package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

var (
	rendererOnce sync.Once
	renderer     *glamour.TermRenderer
	renderMu     sync.Mutex
)

// RenderMarkdown styles md for the terminal. The raw text is returned when
// the renderer is unavailable.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	rendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(defaultWrap),
		)
		if err == nil {
			renderer = r
		}
	})
	if renderer == nil {
		return md
	}

	renderMu.Lock()
	out, err := renderer.Render(md)
	renderMu.Unlock()
	if err != nil {
		return md
	}
	// glamour pads with blank lines
	return strings.Trim(out, "\n")
}
