package tui

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer turns Markdown into terminal output.
type MarkdownRenderer func(string) (string, error)

// NewMarkdownRenderer renders with glamour, picking a light or dark style from the terminal.
// If glamour cannot be set up, the text is passed through unchanged.
func NewMarkdownRenderer() MarkdownRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}
