package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"

	"taskboard/internal/board"
	"taskboard/internal/task"
	"taskboard/internal/theme"
)

func renderDetail(t task.Task, th theme.Theme, width int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Task #%d • %s\n", t.ID, t.Title))
	b.WriteString(fmt.Sprintf("Status    : %s\n", board.ColumnLabel(t.Status)))
	b.WriteString(fmt.Sprintf("Priority  : %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("Due       : %s\n", emptyPlaceholder(t.DueDate.String())))
	if strings.TrimSpace(t.Description) == "" {
		b.WriteString("Description: (empty)\n")
		return b.String()
	}
	b.WriteString("Description:\n")
	b.WriteString(renderMarkdown(t.Description, th, width))
	return b.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw text
// if glamour fails.
func renderMarkdown(md string, th theme.Theme, width int) string {
	style := glamourstyles.LightStyle
	if th.IsDark() {
		style = glamourstyles.DarkStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return md + "\n"
	}
	out, err := r.Render(md)
	if err != nil {
		return md + "\n"
	}
	return out
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}
