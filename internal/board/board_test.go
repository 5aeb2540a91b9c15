package board

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"taskboard/internal/notify"
	"taskboard/internal/task"
	"taskboard/internal/theme"
)

// recordingSaver keeps the last saved list and counts writes.
type recordingSaver struct {
	saved  []task.Task
	writes int
	err    error

	theme       theme.Theme
	themeWrites int
}

func (r *recordingSaver) SaveTasks(_ context.Context, tasks []task.Task) error {
	if r.err != nil {
		return r.err
	}
	r.writes++
	r.saved = append([]task.Task(nil), tasks...)
	return nil
}

func (r *recordingSaver) SaveTheme(_ context.Context, t theme.Theme) error {
	if r.err != nil {
		return r.err
	}
	r.themeWrites++
	r.theme = t
	return nil
}

func newTestController(t *testing.T, initial ...task.Task) (*Controller, *recordingSaver) {
	t.Helper()
	saver := &recordingSaver{}
	clock := time.UnixMilli(1_700_000_000_000)
	ids := task.NewIDSource(func() time.Time { return clock })
	c := NewController(NewStore(saver, initial), Options{Themes: saver, IDs: ids})
	return c, saver
}

func mk(id int64, title string, s task.Status) task.Task {
	return task.Task{ID: id, Title: title, Priority: task.PriorityMedium, Status: s}
}

func TestStoreWriteThrough(t *testing.T) {
	ctx := context.Background()
	saver := &recordingSaver{}
	s := NewStore(saver, nil)

	steps := []func() error{
		func() error { return s.Add(ctx, mk(1, "a", task.StatusTodo)) },
		func() error { return s.Add(ctx, mk(2, "b", task.StatusTodo)) },
		func() error { _, err := s.SetStatus(ctx, 1, task.StatusDone); return err },
		func() error { _, err := s.Remove(ctx, 2); return err },
		func() error { return s.Add(ctx, mk(3, "c", task.StatusInProgress)) },
		func() error { _, err := s.Remove(ctx, 99); return err },
		func() error { _, err := s.SetStatus(ctx, 3, task.StatusInProgress); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !reflect.DeepEqual(saver.saved, s.Tasks()) {
			t.Fatalf("step %d: persisted %+v != memory %+v", i, saver.saved, s.Tasks())
		}
	}
	if saver.writes != 5 {
		t.Errorf("writes = %d, want 5 (no-ops must not save)", saver.writes)
	}
}

func TestStoreRollsBackOnSaveError(t *testing.T) {
	ctx := context.Background()
	saver := &recordingSaver{}
	s := NewStore(saver, []task.Task{mk(1, "a", task.StatusTodo)})
	saver.err = errors.New("disk full")

	if err := s.Add(ctx, mk(2, "b", task.StatusTodo)); err == nil {
		t.Fatal("Add: expected error")
	}
	if _, err := s.SetStatus(ctx, 1, task.StatusDone); err == nil {
		t.Fatal("SetStatus: expected error")
	}
	if _, err := s.Remove(ctx, 1); err == nil {
		t.Fatal("Remove: expected error")
	}
	want := []task.Task{mk(1, "a", task.StatusTodo)}
	if !reflect.DeepEqual(s.Tasks(), want) {
		t.Errorf("store after failed saves = %+v, want %+v", s.Tasks(), want)
	}
}

func TestStoreFindAndInvalidStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&recordingSaver{}, []task.Task{mk(1, "a", task.StatusTodo)})

	if got, ok := s.Find(1); !ok || got.Title != "a" {
		t.Errorf("Find(1) = %+v, %v", got, ok)
	}
	if _, ok := s.Find(2); ok {
		t.Error("Find(2) found a task")
	}
	if _, err := s.SetStatus(ctx, 1, "archived"); !errors.Is(err, task.ErrInvalidStatus) {
		t.Errorf("SetStatus(archived) err = %v", err)
	}
	if err := s.Add(ctx, mk(2, "b", "")); !errors.Is(err, task.ErrInvalidStatus) {
		t.Errorf("Add with empty status err = %v", err)
	}
}

func TestStoreTasksIsACopy(t *testing.T) {
	s := NewStore(&recordingSaver{}, []task.Task{mk(1, "a", task.StatusTodo)})
	got := s.Tasks()
	got[0].Title = "mutated"
	if t0, _ := s.Find(1); t0.Title != "a" {
		t.Error("caller mutated store through Tasks()")
	}
}

func TestFilter(t *testing.T) {
	tasks := []task.Task{
		mk(1, "Write tests", task.StatusTodo),
		mk(2, "Deploy", task.StatusDone),
		{ID: 3, Title: "Review PR", Description: "check the TESTS", Status: task.StatusTodo},
		mk(4, "Fix flaky test", task.StatusInProgress),
		mk(5, "Rewrite", task.StatusTodo),
	}

	tests := []struct {
		name  string
		query string
		opts  FilterOptions
		want  []int64
	}{
		{"empty returns all in order", "", FilterOptions{}, []int64{1, 2, 3, 4, 5}},
		{"spaces are matched literally", "   ", FilterOptions{}, nil},
		{"single space matches titles with a space", " ", FilterOptions{}, []int64{1, 3, 4}},
		{"trailing space is significant", "write ", FilterOptions{}, []int64{1}},
		{"case-insensitive title", "TEST", FilterOptions{}, []int64{1, 4}},
		{"description excluded by default", "check", FilterOptions{}, nil},
		{"description included on request", "tests", FilterOptions{IncludeDescription: true}, []int64{1, 3}},
		{"no match", "zzz", FilterOptions{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tasks, tt.query, tt.opts)
			var ids []int64
			for _, tk := range got {
				ids = append(ids, tk.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Filter(%q) ids = %v, want %v", tt.query, ids, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	view := []task.Task{
		mk(1, "a", task.StatusDone),
		mk(2, "b", task.StatusTodo),
		mk(3, "c", task.StatusDone),
		mk(4, "d", "archived"),
	}
	l := Project(view)

	if len(l.Columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(l.Columns))
	}
	wantOrder := []task.Status{task.StatusTodo, task.StatusInProgress, task.StatusDone}
	for i, s := range wantOrder {
		if l.Columns[i].Status != s {
			t.Errorf("column %d = %s, want %s", i, l.Columns[i].Status, s)
		}
	}

	done, _ := l.Column(task.StatusDone)
	if done.Count != 2 || done.Tasks[0].ID != 1 || done.Tasks[1].ID != 3 {
		t.Errorf("done column = %+v", done)
	}
	inProg, _ := l.Column(task.StatusInProgress)
	if !inProg.Empty() || inProg.Label != "In Progress" {
		t.Errorf("in-progress column = %+v", inProg)
	}

	if !reflect.DeepEqual(Project(view), l) {
		t.Error("Project is not deterministic")
	}
}

func TestScenarioAddTask(t *testing.T) {
	c, saver := newTestController(t)
	notes := c.Dispatch(context.Background(), Submit{Draft: task.Draft{Title: "Write tests", Priority: "high"}})

	if c.Store().Len() != 1 {
		t.Fatalf("store len = %d, want 1", c.Store().Len())
	}
	got, _ := c.Store().Find(1_700_000_000_000)
	if got.Status != task.StatusTodo || got.Priority != task.PriorityHigh {
		t.Errorf("added task = %+v", got)
	}
	todo, _ := c.Layout().Column(task.StatusTodo)
	done, _ := c.Layout().Column(task.StatusDone)
	if todo.Count != 1 {
		t.Errorf("todo count = %d, want 1", todo.Count)
	}
	if !done.Empty() {
		t.Errorf("done should show the placeholder, has %d", done.Count)
	}
	want := []notify.Notification{{Message: `Task "Write tests" added successfully!`, Kind: notify.Success}}
	if !reflect.DeepEqual(notes, want) {
		t.Errorf("notes = %+v, want %+v", notes, want)
	}
	if saver.writes != 1 {
		t.Errorf("writes = %d, want 1", saver.writes)
	}
}

func TestSubmitInvalidDraft(t *testing.T) {
	c, saver := newTestController(t)
	notes := c.Dispatch(context.Background(), Submit{Draft: task.Draft{Title: "  "}})
	if len(notes) != 1 || notes[0].Kind != notify.Error {
		t.Errorf("notes = %+v, want one error", notes)
	}
	if c.Store().Len() != 0 || saver.writes != 0 {
		t.Error("invalid draft changed the store")
	}
}

func TestScenarioDragToDone(t *testing.T) {
	ctx := context.Background()
	c, saver := newTestController(t, mk(1, "a", task.StatusTodo), mk(2, "b", task.StatusTodo))

	c.Dispatch(ctx, DragStart{TaskID: 2})
	if !c.Drag().Carrying(2) {
		t.Fatalf("drag = %+v, want carrying 2", c.Drag())
	}
	c.Dispatch(ctx, DragEnter{Status: task.StatusDone})
	if c.Drag().Over != task.StatusDone {
		t.Errorf("drag-over = %q", c.Drag().Over)
	}
	notes := c.Dispatch(ctx, Drop{Status: task.StatusDone})

	moved, _ := c.Store().Find(2)
	if moved.Status != task.StatusDone {
		t.Errorf("status = %s, want done", moved.Status)
	}
	todo, _ := c.Layout().Column(task.StatusTodo)
	done, _ := c.Layout().Column(task.StatusDone)
	if todo.Count != 1 || done.Count != 1 {
		t.Errorf("counts todo=%d done=%d, want 1/1", todo.Count, done.Count)
	}
	want := []notify.Notification{{Message: "Task moved to done.", Kind: notify.Info}}
	if !reflect.DeepEqual(notes, want) {
		t.Errorf("notes = %+v", notes)
	}
	if c.Drag() != (Drag{}) {
		t.Errorf("drag after drop = %+v, want idle", c.Drag())
	}
	if saver.writes != 1 {
		t.Errorf("writes = %d", saver.writes)
	}
}

func TestDropNoOps(t *testing.T) {
	ctx := context.Background()
	c, saver := newTestController(t, mk(1, "a", task.StatusInProgress))

	tests := []struct {
		name   string
		events []Event
	}{
		{"same column", []Event{DragStart{TaskID: 1}, Drop{Status: task.StatusInProgress}}},
		{"invalid target", []Event{DragStart{TaskID: 1}, Drop{Status: "trash"}}},
		{"cancel", []Event{DragStart{TaskID: 1}, DragCancel{}}},
		{"drop while idle", []Event{Drop{Status: task.StatusDone}}},
		{"unknown task", []Event{DragStart{TaskID: 42}, Drop{Status: task.StatusDone}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notes []notify.Notification
			for _, ev := range tt.events {
				notes = append(notes, c.Dispatch(ctx, ev)...)
			}
			if len(notes) != 0 {
				t.Errorf("notes = %+v, want none", notes)
			}
			if saver.writes != 0 {
				t.Errorf("writes = %d, want 0", saver.writes)
			}
			if c.Drag().Active {
				t.Error("drag still active")
			}
			got, _ := c.Store().Find(1)
			if got.Status != task.StatusInProgress {
				t.Errorf("status changed to %s", got.Status)
			}
		})
	}
}

func TestInProgressMoveMessage(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, mk(1, "a", task.StatusTodo))
	c.Dispatch(ctx, DragStart{TaskID: 1})
	notes := c.Dispatch(ctx, Drop{Status: task.StatusInProgress})
	if len(notes) != 1 || notes[0].Message != "Task moved to in progress." {
		t.Errorf("notes = %+v", notes)
	}
}

func TestDragLeaveClearsHighlightOnly(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, mk(1, "a", task.StatusTodo))
	c.Dispatch(ctx, DragStart{TaskID: 1})
	c.Dispatch(ctx, DragEnter{Status: task.StatusDone})
	c.Dispatch(ctx, DragLeave{Status: task.StatusInProgress})
	if c.Drag().Over != task.StatusDone {
		t.Error("leaving another column cleared the highlight")
	}
	c.Dispatch(ctx, DragLeave{Status: task.StatusDone})
	if c.Drag().Over != "" || !c.Drag().Carrying(1) {
		t.Errorf("drag = %+v", c.Drag())
	}
}

func TestScenarioDeleteDeclined(t *testing.T) {
	ctx := context.Background()
	c, saver := newTestController(t, mk(1, "a", task.StatusTodo))
	before := c.Store().Tasks()

	if n := c.Dispatch(ctx, RequestDelete{TaskID: 1}); len(n) != 0 {
		t.Errorf("request produced notes %+v", n)
	}
	if p, ok := c.Pending(); !ok || p.ID != 1 {
		t.Fatalf("pending = %+v, %v", p, ok)
	}
	notes := c.Dispatch(ctx, DeclineDelete{})

	if len(notes) != 0 {
		t.Errorf("notes = %+v, want none", notes)
	}
	if !reflect.DeepEqual(c.Store().Tasks(), before) || saver.writes != 0 {
		t.Error("declined delete changed the store")
	}
	if _, ok := c.Pending(); ok {
		t.Error("pending delete not cleared")
	}
	// Confirming after declining has nothing to act on.
	if n := c.Dispatch(ctx, ConfirmDelete{}); len(n) != 0 || c.Store().Len() != 1 {
		t.Errorf("confirm without pending: notes=%+v len=%d", n, c.Store().Len())
	}
}

func TestDeleteConfirmed(t *testing.T) {
	ctx := context.Background()
	c, saver := newTestController(t, mk(1, "Plan sprint", task.StatusTodo), mk(2, "b", task.StatusDone))

	c.Dispatch(ctx, RequestDelete{TaskID: 1})
	notes := c.Dispatch(ctx, ConfirmDelete{})

	want := []notify.Notification{{Message: `Task "Plan sprint" deleted.`, Kind: notify.Error}}
	if !reflect.DeepEqual(notes, want) {
		t.Errorf("notes = %+v", notes)
	}
	if _, ok := c.Store().Find(1); ok {
		t.Error("task still present")
	}
	if !reflect.DeepEqual(saver.saved, c.Store().Tasks()) {
		t.Error("persisted list diverged from memory")
	}
	todo, _ := c.Layout().Column(task.StatusTodo)
	if !todo.Empty() {
		t.Errorf("todo count = %d, want 0", todo.Count)
	}
}

func TestRequestDeleteUnknownIsIgnored(t *testing.T) {
	c, _ := newTestController(t, mk(1, "a", task.StatusTodo))
	c.Dispatch(context.Background(), RequestDelete{TaskID: 9})
	if _, ok := c.Pending(); ok {
		t.Error("unknown id entered confirmation")
	}
}

func TestScenarioSearchNoMatches(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t,
		mk(1, "Write tests", task.StatusTodo),
		mk(2, "Deploy", task.StatusInProgress),
		mk(3, "Plan", task.StatusDone),
	)
	c.Dispatch(ctx, Search{Query: "nothing matches this"})
	for _, col := range c.Layout().Columns {
		if !col.Empty() || col.Count != 0 {
			t.Errorf("column %s count = %d, want empty", col.Status, col.Count)
		}
	}

	c.Dispatch(ctx, Search{Query: ""})
	if len(c.View()) != 3 {
		t.Errorf("view after clearing query = %d, want 3", len(c.View()))
	}
}

func TestSearchIsReappliedAfterMutation(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, mk(1, "Write tests", task.StatusTodo))
	c.Dispatch(ctx, Search{Query: "deploy"})
	c.Dispatch(ctx, Submit{Draft: task.Draft{Title: "Deploy to staging"}})

	view := c.View()
	if len(view) != 1 || view[0].Title != "Deploy to staging" {
		t.Errorf("view = %+v", view)
	}
}

func TestToggleTheme(t *testing.T) {
	ctx := context.Background()
	c, saver := newTestController(t)
	if c.Theme() != theme.Light {
		t.Fatalf("initial theme = %s", c.Theme())
	}
	notes := c.Dispatch(ctx, ToggleTheme{})
	if c.Theme() != theme.Dark || saver.theme != theme.Dark || saver.themeWrites != 1 {
		t.Errorf("theme = %s saved = %s", c.Theme(), saver.theme)
	}
	if len(notes) != 1 || notes[0].Message != "Switched to dark theme." {
		t.Errorf("notes = %+v", notes)
	}

	saver.err = errors.New("read-only")
	notes = c.Dispatch(ctx, ToggleTheme{})
	if c.Theme() != theme.Dark {
		t.Error("theme flipped despite save failure")
	}
	if len(notes) != 1 || notes[0].Kind != notify.Error {
		t.Errorf("notes = %+v", notes)
	}
}

func TestSaveFailureSurfacesAsErrorNote(t *testing.T) {
	ctx := context.Background()
	c, saver := newTestController(t, mk(1, "a", task.StatusTodo))
	saver.err = errors.New("disk full")

	c.Dispatch(ctx, DragStart{TaskID: 1})
	notes := c.Dispatch(ctx, Drop{Status: task.StatusDone})
	if len(notes) != 1 || notes[0].Kind != notify.Error {
		t.Fatalf("notes = %+v", notes)
	}
	todo, _ := c.Layout().Column(task.StatusTodo)
	if todo.Count != 1 {
		t.Error("layout moved the task although saving failed")
	}
}

func TestNewTaskIDsFollowExisting(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, mk(1_800_000_000_000, "future", task.StatusTodo))
	c.Dispatch(ctx, Submit{Draft: task.Draft{Title: "next"}})
	tasks := c.Store().Tasks()
	if tasks[1].ID != 1_800_000_000_001 {
		t.Errorf("new id = %d, want one past the largest existing id", tasks[1].ID)
	}
}
