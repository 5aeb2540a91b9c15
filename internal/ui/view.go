package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/notify"
	"taskboard/internal/task"
)

const (
	// boardTop is the first screen line of the column boxes.
	boardTop = 2
	// cardOffset is the line of the first card inside a column box: the top
	// border, then the header.
	cardOffset = 2
)

func (m Model) View() string {
	st := newStyles(m.ctrl.Theme())
	var b strings.Builder

	b.WriteString(st.title.Render("Task Board"))
	b.WriteString(st.subtle.Render(fmt.Sprintf("  %s theme", m.ctrl.Theme())))
	if q := m.ctrl.Query(); q != "" {
		b.WriteString(st.subtle.Render(fmt.Sprintf(" • filter: %q", q)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderBoard(st))
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(m.search.View())
		b.WriteString("\n")
	case modeAdd:
		if m.form != nil {
			b.WriteString(m.form.Form.View())
			b.WriteString("\n")
			b.WriteString(renderSuggestions(st, m.form))
		}
	case modeDetail:
		if t, ok := m.selectedTask(); ok {
			b.WriteString(renderDetail(t, m.ctrl.Theme(), m.boardWidth()))
		}
	}

	if toasts := renderToasts(st, m.toasts.Visible()); toasts != "" {
		b.WriteString(toasts)
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(st.help.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) boardWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) columnWidth() int {
	n := len(m.ctrl.Layout().Columns)
	if n == 0 {
		return m.boardWidth()
	}
	return m.boardWidth() / n
}

func (m Model) renderBoard(st styles) string {
	layout := m.ctrl.Layout()
	drag := m.ctrl.Drag()
	width := m.columnWidth()
	boxes := make([]string, 0, len(layout.Columns))
	for i, col := range layout.Columns {
		cursor := -1
		if i == m.col && m.mode == modeBoard && !drag.Active {
			cursor = m.row
		}
		boxes = append(boxes, renderColumn(st, col, cursor, drag, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// renderColumn draws one column box of the given outer width. cursor is the
// highlighted row, or -1.
func renderColumn(st styles, col board.Column, cursor int, drag board.Drag, width int) string {
	inner := max(width-4, 8)
	lines := make([]string, 0, len(col.Tasks)+1)
	lines = append(lines, st.header(col.Status).Render(fmt.Sprintf("%s (%d)", col.Label, col.Count)))

	if col.Empty() {
		lines = append(lines, st.placeholder.Render(board.EmptyPlaceholder))
	}
	for i, t := range col.Tasks {
		lines = append(lines, renderCard(st, t, inner, i == cursor, drag.Carrying(t.ID)))
	}

	box := st.column
	if drag.Active && drag.Over == col.Status {
		box = st.dragOver
	}
	return box.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderCard(st styles, t task.Task, width int, selected, carried bool) string {
	marker := "  "
	switch {
	case carried:
		marker = "» "
	case selected:
		marker = "> "
	}
	tag := "[" + string(t.Priority) + "]"
	avail := width - len(marker) - len(tag) - 1
	title := ansi.Truncate(t.Title, max(avail, 1), "…")
	pad := max(avail-ansi.StringWidth(title), 0)

	head := marker + title
	if carried {
		head = st.carriedCard.Render(head)
	}
	line := head + strings.Repeat(" ", pad) + " " + st.priority(t.Priority).Render(tag)
	if selected && !carried {
		return st.selectedCard.Render(line)
	}
	return line
}

func renderSuggestions(st styles, f *addForm) string {
	items := f.Suggestions()
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(st.subtle.Render("Suggestions:"))
	b.WriteString("\n")
	for i, s := range items {
		prefix := "  "
		if i == f.cursor.Index {
			prefix = "> "
		}
		b.WriteString(prefix + s + "\n")
	}
	return b.String()
}

func renderToasts(st styles, toasts []notify.Toast) string {
	var b strings.Builder
	for _, t := range toasts {
		if t.Phase != notify.Shown && t.Phase != notify.Leaving {
			continue
		}
		style := st.toast(t.Kind)
		if t.Phase == notify.Leaving {
			style = style.Faint(true)
		}
		b.WriteString(style.Render(toastIcon(t.Kind) + " " + t.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func toastIcon(k notify.Kind) string {
	switch k {
	case notify.Success:
		return "✔"
	case notify.Error:
		return "✖"
	default:
		return "ℹ"
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s column • %s/%s task • %s pick up/drop • %s cancel • %s add • %s search • %s delete • %s detail • %s theme • %s quit",
		k.Left, k.Right, k.Up, k.Down, keyLabel(k.Grab), k.Cancel, k.Add, k.Search, k.Delete, k.Detail, k.Theme, k.Quit)
}
