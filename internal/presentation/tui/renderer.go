package tui

import (
	"github.com/aretw0/automata/pkg/report"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RenderReport renders the report records as a styled markdown table.
func RenderReport(records []report.Record) (string, error) {
	return NewRenderer()("## Machines\n\n" + report.Markdown(records))
}
