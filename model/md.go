package model

import (
	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/glamour"
)

func renderMarkdown(md string, width int, style string) (string, error) {
	if width < 40 {
		width = 40
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func renderMarkdownToANSI(md string, width int) string {
	if width < 40 {
		width = 40
	}
	out := markdown.Render(md, width-4, 4)
	return string(out)
}

// renderNote tries glamour first and falls back to go-term-markdown, which
// cannot fail. An empty result from either means raw text.
func renderNote(content string, width int, style string) string {
	if out, err := renderMarkdown(content, width, style); err == nil && out != "" {
		return out
	}
	if out := renderMarkdownToANSI(content, width); out != "" {
		return out
	}
	return content
}
