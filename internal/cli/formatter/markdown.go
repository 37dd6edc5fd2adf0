package formatter

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a proposal document for the terminal. When styled
// is false the plain "notty" style is used, which keeps output free of
// escape sequences.
func RenderMarkdown(doc string, width int, styled bool) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
