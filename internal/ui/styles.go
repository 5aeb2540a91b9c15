package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/notify"
	"taskboard/internal/task"
	"taskboard/internal/theme"
)

type palette struct {
	text     lipgloss.Color
	muted    lipgloss.Color
	border   lipgloss.Color
	accent   lipgloss.Color
	selected lipgloss.Color
	dragOver lipgloss.Color
	info     lipgloss.Color
	success  lipgloss.Color
	err      lipgloss.Color
	columns  map[task.Status]lipgloss.Color
	priority map[task.Priority]lipgloss.Color
}

var (
	lightPalette = palette{
		text:     lipgloss.Color("235"),
		muted:    lipgloss.Color("245"),
		border:   lipgloss.Color("250"),
		accent:   lipgloss.Color("27"),
		selected: lipgloss.Color("254"),
		dragOver: lipgloss.Color("33"),
		info:     lipgloss.Color("27"),
		success:  lipgloss.Color("28"),
		err:      lipgloss.Color("160"),
		columns: map[task.Status]lipgloss.Color{
			task.StatusTodo:       lipgloss.Color("31"),
			task.StatusInProgress: lipgloss.Color("172"),
			task.StatusDone:       lipgloss.Color("28"),
		},
		priority: map[task.Priority]lipgloss.Color{
			task.PriorityLow:    lipgloss.Color("245"),
			task.PriorityMedium: lipgloss.Color("172"),
			task.PriorityHigh:   lipgloss.Color("160"),
		},
	}

	darkPalette = palette{
		text:     lipgloss.Color("255"),
		muted:    lipgloss.Color("241"),
		border:   lipgloss.Color("240"),
		accent:   lipgloss.Color("212"),
		selected: lipgloss.Color("237"),
		dragOver: lipgloss.Color("141"),
		info:     lipgloss.Color("45"),
		success:  lipgloss.Color("42"),
		err:      lipgloss.Color("196"),
		columns: map[task.Status]lipgloss.Color{
			task.StatusTodo:       lipgloss.Color("45"),
			task.StatusInProgress: lipgloss.Color("214"),
			task.StatusDone:       lipgloss.Color("42"),
		},
		priority: map[task.Priority]lipgloss.Color{
			task.PriorityLow:    lipgloss.Color("241"),
			task.PriorityMedium: lipgloss.Color("214"),
			task.PriorityHigh:   lipgloss.Color("196"),
		},
	}
)

func paletteFor(t theme.Theme) palette {
	if t.IsDark() {
		return darkPalette
	}
	return lightPalette
}

type styles struct {
	title        lipgloss.Style
	subtle       lipgloss.Style
	help         lipgloss.Style
	column       lipgloss.Style
	dragOver     lipgloss.Style
	placeholder  lipgloss.Style
	selectedCard lipgloss.Style
	carriedCard  lipgloss.Style
	p            palette
}

func newStyles(t theme.Theme) styles {
	p := paletteFor(t)
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)
	return styles{
		title:        lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		subtle:       lipgloss.NewStyle().Foreground(p.muted),
		help:         lipgloss.NewStyle().Foreground(p.muted),
		column:       column,
		dragOver:     column.BorderForeground(p.dragOver).BorderStyle(lipgloss.DoubleBorder()),
		placeholder:  lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		selectedCard: lipgloss.NewStyle().Background(p.selected).Foreground(p.text).Bold(true),
		carriedCard:  lipgloss.NewStyle().Foreground(p.dragOver).Bold(true),
		p:            p,
	}
}

func (s styles) header(status task.Status) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(s.p.columns[status])
}

func (s styles) priority(p task.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.p.priority[p])
}

func (s styles) toast(k notify.Kind) lipgloss.Style {
	c := s.p.info
	switch k {
	case notify.Success:
		c = s.p.success
	case notify.Error:
		c = s.p.err
	}
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(c).PaddingLeft(1)
}
