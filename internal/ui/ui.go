package ui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/notify"
	"taskboard/internal/task"
)

type mode int

const (
	modeBoard mode = iota
	modeSearch
	modeAdd
	modeDetail
)

const defaultWidth = 80

type Model struct {
	ctrl   *board.Controller
	cfg    config.Config
	log    *slog.Logger
	toasts *notify.Center

	col        int
	row        int
	mode       mode
	search     textinput.Model
	form       *addForm
	confirmDel bool
	mouseDrag  bool
	status     string
	width      int
	height     int
}

func New(ctrl *board.Controller, cfg config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ti := textinput.New()
	ti.Placeholder = "Search titles"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40

	m := Model{
		ctrl:   ctrl,
		cfg:    cfg,
		log:    logger,
		toasts: notify.NewCenter(),
		search: ti,
		mode:   modeBoard,
		status: fmt.Sprintf("Press '%s' to add, '%s' to pick up a task, '%s' to delete.",
			cfg.Keys.Add, keyLabel(cfg.Keys.Grab), cfg.Keys.Delete),
	}
	m.focusFirstTask()
	return m
}

func Run(ctrl *board.Controller, cfg config.Config, logger *slog.Logger) error {
	program := tea.NewProgram(New(ctrl, cfg, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case toastMsg:
		m.toasts.Advance(msg.id, msg.phase)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-10, 10)
	}
	if m.mode == modeAdd && m.form != nil {
		return m.updateAddMode(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(msg)
	case modeSearch:
		return m.updateSearchMode(key, msg)
	case modeDetail:
		return m.updateDetailMode(key)
	}
	return m.updateBoardMode(key)
}

func (m Model) updateBoardMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	drag := m.ctrl.Drag()
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Left, "left":
		return m.moveColumn(-1)
	case k.Right, "right":
		return m.moveColumn(1)
	case k.Up, "up":
		if !drag.Active && m.row > 0 {
			m.row--
		}
	case k.Down, "down":
		if !drag.Active {
			m.row = clampCursor(m.row+1, len(m.currentColumn().Tasks))
		}
	case k.Grab:
		if drag.Active {
			return m.drop(m.currentColumn().Status)
		}
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.dispatch(board.DragStart{TaskID: t.ID})
		m.dispatch(board.DragEnter{Status: m.currentColumn().Status})
		m.mouseDrag = false
		m.status = fmt.Sprintf("Moving \"%s\": %s/%s to choose a column, %s to drop, %s to cancel",
			t.Title, k.Left, k.Right, keyLabel(k.Grab), k.Cancel)
	case k.Cancel:
		if drag.Active {
			m.dispatch(board.DragCancel{})
			m.mouseDrag = false
			m.focusTask(drag.TaskID)
			m.status = "Move cancelled"
		}
	case k.Add:
		if drag.Active {
			return m, nil
		}
		m.form = newAddForm(m.ctrl.Store().Tasks(), m.ctrl.Theme())
		m.mode = modeAdd
		m.status = "New task: enter to advance, ctrl+n/ctrl+p to browse suggestions, ctrl+y to accept, esc to cancel"
		return m, m.form.Form.Init()
	case k.Search:
		if drag.Active {
			return m, nil
		}
		m.mode = modeSearch
		m.search.SetValue(m.ctrl.Query())
		m.search.CursorEnd()
		m.status = "Search: type to filter, enter/esc to return to the board"
		return m, m.search.Focus()
	case k.Delete:
		if drag.Active {
			return m, nil
		}
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.dispatch(board.RequestDelete{TaskID: t.ID})
		if _, pending := m.ctrl.Pending(); pending {
			m.confirmDel = true
			m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
		}
	case k.Detail:
		if drag.Active {
			return m, nil
		}
		if _, ok := m.selectedTask(); !ok {
			m.status = "No task selected"
			return m, nil
		}
		m.mode = modeDetail
		m.status = "Details: esc or enter to close"
	case k.Theme:
		return m, m.dispatch(board.ToggleTheme{})
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.dispatch(board.DeclineDelete{})
		m.status = "Delete cancelled"
		m.confirmDel = false
		return m, nil
	case "y", "Y":
		m.confirmDel = false
		cmd := m.dispatch(board.ConfirmDelete{})
		m.row = clampCursor(m.row, len(m.currentColumn().Tasks))
		m.status = ""
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "enter":
		m.mode = modeBoard
		m.search.Blur()
		m.status = searchSummary(m.ctrl.Query())
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.ctrl.Query() {
		m.dispatch(board.Search{Query: q})
		m.row = clampCursor(m.row, len(m.currentColumn().Tasks))
	}
	return m, cmd
}

func (m Model) updateDetailMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "enter", "q", m.cfg.Keys.Detail:
		m.mode = modeBoard
		m.status = ""
	}
	return m, nil
}

func (m Model) moveColumn(delta int) (tea.Model, tea.Cmd) {
	cols := len(m.ctrl.Layout().Columns)
	next := clampCursor(m.col+delta, cols)
	if next == m.col {
		return m, nil
	}
	drag := m.ctrl.Drag()
	if drag.Active {
		m.dispatch(board.DragLeave{Status: m.currentColumn().Status})
		m.col = next
		m.dispatch(board.DragEnter{Status: m.currentColumn().Status})
		return m, nil
	}
	m.col = next
	m.row = clampCursor(m.row, len(m.currentColumn().Tasks))
	return m, nil
}

func (m Model) drop(status task.Status) (tea.Model, tea.Cmd) {
	id := m.ctrl.Drag().TaskID
	m.mouseDrag = false
	cmd := m.dispatch(board.Drop{Status: status})
	m.focusTask(id)
	if cmd == nil {
		m.status = "Task stayed in place"
	} else {
		m.status = ""
	}
	return m, cmd
}

// dispatch sends ev to the controller and schedules any notifications it
// produced.
func (m *Model) dispatch(ev board.Event) tea.Cmd {
	notes := m.ctrl.Dispatch(context.Background(), ev)
	if len(notes) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, n := range notes {
		if n.Kind == notify.Error {
			m.log.Warn("notification", "message", n.Message)
		}
		cmds = append(cmds, m.pushToast(n)...)
	}
	return tea.Batch(cmds...)
}

func (m Model) currentColumn() board.Column {
	cols := m.ctrl.Layout().Columns
	if len(cols) == 0 {
		return board.Column{}
	}
	return cols[clampCursor(m.col, len(cols))]
}

func (m Model) selectedTask() (task.Task, bool) {
	col := m.currentColumn()
	if len(col.Tasks) == 0 {
		return task.Task{}, false
	}
	return col.Tasks[clampCursor(m.row, len(col.Tasks))], true
}

// focusTask puts the cursor on task id if it is in view.
func (m *Model) focusTask(id int64) {
	for ci, col := range m.ctrl.Layout().Columns {
		for ri, t := range col.Tasks {
			if t.ID == id {
				m.col, m.row = ci, ri
				return
			}
		}
	}
	m.row = clampCursor(m.row, len(m.currentColumn().Tasks))
}

func (m *Model) focusFirstTask() {
	for ci, col := range m.ctrl.Layout().Columns {
		if len(col.Tasks) > 0 {
			m.col, m.row = ci, 0
			return
		}
	}
}

func searchSummary(q string) string {
	if q == "" {
		return "Showing all tasks"
	}
	return fmt.Sprintf("Filtered by \"%s\"", q)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
