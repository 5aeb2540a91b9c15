package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"taskboard/internal/task"
	"taskboard/internal/theme"
)

const (
	TasksKey = "kanbanTasks"
	ThemeKey = "theme"
)

// LoadResult is the outcome of reading the task list. Callers that only want
// a usable list call OrEmpty; Err is kept for logging.
type LoadResult struct {
	Tasks []task.Task
	Found bool
	Err   error
}

// OrEmpty returns the loaded tasks, or an empty list if the key was absent or
// could not be read or decoded.
func (r LoadResult) OrEmpty() []task.Task {
	if r.Err != nil || r.Tasks == nil {
		return []task.Task{}
	}
	return r.Tasks
}

// Adapter maps the board's two persisted values onto a KV store.
type Adapter struct {
	kv KV
}

func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

func (a *Adapter) LoadTasks(ctx context.Context) LoadResult {
	raw, ok, err := a.kv.Get(ctx, TasksKey)
	if err != nil {
		return LoadResult{Err: fmt.Errorf("read %s: %w", TasksKey, err)}
	}
	if !ok {
		return LoadResult{}
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return LoadResult{Found: true, Err: fmt.Errorf("decode %s: %w", TasksKey, err)}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return LoadResult{Tasks: tasks, Found: true}
}

// SaveTasks overwrites the stored list with tasks.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, TasksKey, string(data))
}

// LoadTheme returns the stored theme, or theme.Default when absent or unknown.
func (a *Adapter) LoadTheme(ctx context.Context) theme.Theme {
	raw, ok, err := a.kv.Get(ctx, ThemeKey)
	if err != nil || !ok {
		return theme.Default
	}
	t, _ := theme.Parse(raw)
	return t
}

func (a *Adapter) SaveTheme(ctx context.Context, t theme.Theme) error {
	return a.kv.Set(ctx, ThemeKey, string(t))
}
