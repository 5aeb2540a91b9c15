package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"taskboard/internal/board"
	"taskboard/internal/suggest"
	"taskboard/internal/task"
	"taskboard/internal/theme"
)

var errTitleRequired = errors.New("title is required")

// addForm is the new-task form. huh writes the field values through the
// bound pointers.
type addForm struct {
	Form *huh.Form

	Title       string
	Description string
	Priority    string
	DueDate     string

	theme     theme.Theme
	suggester *suggest.Suggester
	cursor    suggest.Cursor
	lastQuery string
}

func newAddForm(existing []task.Task, th theme.Theme) *addForm {
	titles := make([]string, 0, len(existing))
	for _, t := range existing {
		titles = append(titles, t.Title)
	}
	f := &addForm{
		Priority:  string(task.DefaultPriority),
		theme:     th,
		suggester: suggest.New(titles...),
	}
	f.buildForm()
	return f
}

func (f *addForm) buildForm() {
	priorityOptions := make([]huh.Option[string], 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		priorityOptions = append(priorityOptions, huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), string(p)))
	}

	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.Title).
				Placeholder("What needs doing?").
				CharLimit(256).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errTitleRequired
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&f.Description).
				Placeholder("Optional, markdown is fine").
				Lines(3),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions...).
				Value(&f.Priority),
			huh.NewInput().
				Title("Due date").
				Value(&f.DueDate).
				Placeholder("YYYY-MM-DD (optional)").
				Validate(func(s string) error {
					_, err := task.ParseDate(s)
					return err
				}),
		).Title("New task"),
	).WithShowHelp(false)

	if f.theme.IsDark() {
		f.Form.WithTheme(huh.ThemeDracula())
	} else {
		f.Form.WithTheme(huh.ThemeCharm())
	}
}

// Suggestions returns the completions for the title typed so far.
func (f *addForm) Suggestions() []string {
	if f.lastQuery != f.Title {
		f.lastQuery = f.Title
		f.cursor = suggest.NewCursor(f.suggester.Suggest(f.Title, suggest.DefaultLimit))
	}
	return f.cursor.Items
}

// acceptSuggestion copies the highlighted suggestion into the title field.
// The form is rebuilt because huh only reads bound values at construction.
func (f *addForm) acceptSuggestion() bool {
	f.Suggestions()
	pick, ok := f.cursor.Selected()
	if !ok {
		return false
	}
	f.Title = pick
	f.lastQuery = pick
	f.cursor = suggest.NewCursor(nil)
	f.buildForm()
	return true
}

func (f *addForm) draft() task.Draft {
	return task.Draft{
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
	}
}

func (m Model) updateAddMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.closeForm()
			m.status = "Cancelled"
			return m, nil
		case "ctrl+n":
			m.form.Suggestions()
			m.form.cursor.Next()
			return m, nil
		case "ctrl+p":
			m.form.Suggestions()
			m.form.cursor.Prev()
			return m, nil
		case "ctrl+y":
			if m.form.acceptSuggestion() {
				return m, m.form.Form.Init()
			}
			return m, nil
		}
	}

	form, cmd := m.form.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.Form = f
	}

	switch m.form.Form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	d := m.form.draft()
	m.closeForm()
	before := m.ctrl.Store().Len()
	cmd := m.dispatch(board.Submit{Draft: d})
	if m.ctrl.Store().Len() > before {
		tasks := m.ctrl.Store().Tasks()
		m.focusTask(tasks[len(tasks)-1].ID)
	}
	m.status = ""
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeBoard
}
