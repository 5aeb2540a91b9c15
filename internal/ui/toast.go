package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/notify"
)

// toastMsg advances one toast to its next phase.
type toastMsg struct {
	id    int
	phase notify.Phase
}

func (m *Model) pushToast(n notify.Notification) []tea.Cmd {
	_, steps := m.toasts.Push(n)
	cmds := make([]tea.Cmd, 0, len(steps))
	for _, s := range steps {
		cmds = append(cmds, tea.Tick(s.After, func(time.Time) tea.Msg {
			return toastMsg{id: s.ID, phase: s.Phase}
		}))
	}
	return cmds
}
