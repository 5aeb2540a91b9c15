package board

import (
	"context"
	"fmt"
	"log/slog"

	"taskboard/internal/notify"
	"taskboard/internal/task"
	"taskboard/internal/theme"
)

// ThemeSaver persists the theme preference.
type ThemeSaver interface {
	SaveTheme(ctx context.Context, t theme.Theme) error
}

type Options struct {
	Filter FilterOptions
	Theme  theme.Theme
	Themes ThemeSaver
	IDs    *task.IDSource
	Logger *slog.Logger
}

// Controller consumes gesture events, applies them to the store and keeps the
// filtered view and column layout current. It is meant to be driven from a
// single goroutine.
type Controller struct {
	store  *Store
	themes ThemeSaver
	ids    *task.IDSource
	log    *slog.Logger
	opts   FilterOptions

	query   string
	view    []task.Task
	layout  Layout
	drag    Drag
	pending *task.Task
	theme   theme.Theme
}

func NewController(store *Store, opts Options) *Controller {
	if opts.IDs == nil {
		opts.IDs = task.NewIDSource(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Theme == "" {
		opts.Theme = theme.Default
	}
	for _, t := range store.Tasks() {
		opts.IDs.Observe(t.ID)
	}
	c := &Controller{
		store:  store,
		themes: opts.Themes,
		ids:    opts.IDs,
		log:    opts.Logger,
		opts:   opts.Filter,
		theme:  opts.Theme,
	}
	c.refresh()
	return c
}

func (c *Controller) Store() *Store         { return c.store }
func (c *Controller) Layout() Layout        { return c.layout }
func (c *Controller) View() []task.Task     { return append([]task.Task(nil), c.view...) }
func (c *Controller) Query() string         { return c.query }
func (c *Controller) Drag() Drag            { return c.drag }
func (c *Controller) Theme() theme.Theme    { return c.theme }
func (c *Controller) Filter() FilterOptions { return c.opts }

func (c *Controller) Pending() (task.Task, bool) {
	if c.pending == nil {
		return task.Task{}, false
	}
	return *c.pending, true
}

// Dispatch applies ev and returns the notifications it produced.
func (c *Controller) Dispatch(ctx context.Context, ev Event) []notify.Notification {
	switch ev := ev.(type) {
	case Submit:
		return c.submit(ctx, ev.Draft)
	case DragStart:
		if _, ok := c.store.Find(ev.TaskID); ok {
			c.drag = c.drag.start(ev.TaskID)
		}
	case DragEnter:
		c.drag = c.drag.enter(ev.Status)
	case DragLeave:
		c.drag = c.drag.leave(ev.Status)
	case Drop:
		return c.drop(ctx, ev.Status)
	case DragCancel:
		c.drag = Drag{}
	case RequestDelete:
		if t, ok := c.store.Find(ev.TaskID); ok {
			c.pending = &t
		}
	case ConfirmDelete:
		return c.confirmDelete(ctx)
	case DeclineDelete:
		c.pending = nil
	case Search:
		c.query = ev.Query
		c.refresh()
	case ToggleTheme:
		return c.toggleTheme(ctx)
	}
	return nil
}

func (c *Controller) submit(ctx context.Context, d task.Draft) []notify.Notification {
	t, err := d.Build(c.ids.Next())
	if err != nil {
		return errorNote(err)
	}
	if err := c.store.Add(ctx, t); err != nil {
		c.log.Error("add task", "title", t.Title, "err", err)
		return errorNote(err)
	}
	c.log.Debug("saved tasks", "op", "add", "id", t.ID, "count", c.store.Len())
	c.refresh()
	return note(fmt.Sprintf("Task \"%s\" added successfully!", t.Title), notify.Success)
}

func (c *Controller) drop(ctx context.Context, status task.Status) []notify.Notification {
	d := c.drag
	c.drag = Drag{}
	if !d.Active || !status.Valid() {
		return nil
	}
	moved, err := c.store.SetStatus(ctx, d.TaskID, status)
	if err != nil {
		c.log.Error("move task", "id", d.TaskID, "status", status, "err", err)
		return errorNote(err)
	}
	if !moved {
		return nil
	}
	c.log.Debug("saved tasks", "op", "move", "id", d.TaskID, "status", status)
	c.refresh()
	return note(fmt.Sprintf("Task moved to %s.", status.Human()), notify.Info)
}

func (c *Controller) confirmDelete(ctx context.Context) []notify.Notification {
	if c.pending == nil {
		return nil
	}
	t := *c.pending
	c.pending = nil
	removed, err := c.store.Remove(ctx, t.ID)
	if err != nil {
		c.log.Error("delete task", "id", t.ID, "err", err)
		return errorNote(err)
	}
	if !removed {
		return nil
	}
	if c.drag.Carrying(t.ID) {
		c.drag = Drag{}
	}
	c.log.Debug("saved tasks", "op", "delete", "id", t.ID, "count", c.store.Len())
	c.refresh()
	return note(fmt.Sprintf("Task \"%s\" deleted.", t.Title), notify.Error)
}

func (c *Controller) toggleTheme(ctx context.Context) []notify.Notification {
	next := c.theme.Toggle()
	if c.themes != nil {
		if err := c.themes.SaveTheme(ctx, next); err != nil {
			c.log.Error("save theme", "theme", next, "err", err)
			return errorNote(fmt.Errorf("save theme: %w", err))
		}
	}
	c.theme = next
	return note(fmt.Sprintf("Switched to %s theme.", next), notify.Info)
}

// refresh rebuilds the filtered view and layout from the store.
func (c *Controller) refresh() {
	c.view = Filter(c.store.Tasks(), c.query, c.opts)
	c.layout = Project(c.view)
}

func note(msg string, kind notify.Kind) []notify.Notification {
	return []notify.Notification{{Message: msg, Kind: kind}}
}

func errorNote(err error) []notify.Notification {
	return note(err.Error(), notify.Error)
}
