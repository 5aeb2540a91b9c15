package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/task"
)

// columnAt maps a screen column to a board column index, or -1 when x is
// outside the board.
func (m Model) columnAt(x int) int {
	w := m.columnWidth()
	n := len(m.ctrl.Layout().Columns)
	if w <= 0 || x < 0 || x >= w*n {
		return -1
	}
	return x / w
}

// cardAt returns the row of the card at screen line y in column col, or -1.
func (m Model) cardAt(col, y int) int {
	cols := m.ctrl.Layout().Columns
	if col < 0 || col >= len(cols) {
		return -1
	}
	row := y - boardTop - cardOffset
	if row < 0 || row >= len(cols[col].Tasks) {
		return -1
	}
	return row
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeBoard || m.confirmDel {
		return m, nil
	}
	drag := m.ctrl.Drag()
	col := m.columnAt(msg.X)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || drag.Active {
			return m, nil
		}
		row := m.cardAt(col, msg.Y)
		if row < 0 {
			return m, nil
		}
		m.col, m.row = col, row
		t := m.ctrl.Layout().Columns[col].Tasks[row]
		m.dispatch(board.DragStart{TaskID: t.ID})
		m.dispatch(board.DragEnter{Status: m.currentColumn().Status})
		m.mouseDrag = m.ctrl.Drag().Active
		return m, nil
	case tea.MouseActionMotion:
		if !drag.Active || !m.mouseDrag || col < 0 || col == m.col {
			return m, nil
		}
		m.dispatch(board.DragLeave{Status: m.currentColumn().Status})
		m.col = col
		m.dispatch(board.DragEnter{Status: m.currentColumn().Status})
		return m, nil
	case tea.MouseActionRelease:
		// Keyboard drags ignore the pointer.
		if !drag.Active || !m.mouseDrag {
			return m, nil
		}
		m.mouseDrag = false
		if col < 0 {
			m.dispatch(board.DragCancel{})
			m.focusTask(drag.TaskID)
			return m, nil
		}
		m.col = col
		return m.drop(m.statusAt(col))
	}
	return m, nil
}

func (m Model) statusAt(col int) task.Status {
	cols := m.ctrl.Layout().Columns
	if col < 0 || col >= len(cols) {
		return ""
	}
	return cols[col].Status
}
