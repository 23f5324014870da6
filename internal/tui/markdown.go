package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"vida/internal/config"
)

type rendererKey struct {
	style string
	width int
}

// Cache renderers by style and wrap width. Creating a renderer with
// WithAutoStyle can trigger terminal capability queries that may block on
// some terminals, so we pin the configured style and reuse.
var mdRenderers = map[rendererKey]*glamour.TermRenderer{}

func renderMarkdown(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if style == "" {
		style = config.DefaultTheme
	}
	if width < 10 {
		width = 10
	}
	k := rendererKey{style: style, width: width}
	r := mdRenderers[k]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[k] = rr
		r = rr
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
