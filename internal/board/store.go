// Package board holds the task list and the rules for changing it: the
// write-through store, the search filter, the per-column layout, the
// pick-up/drop state machine and the controller that turns user gestures
// into store changes and notifications.
package board

import (
	"context"
	"fmt"

	"taskboard/internal/task"
)

// Saver persists the complete task list. Every call overwrites what was there.
type Saver interface {
	SaveTasks(ctx context.Context, tasks []task.Task) error
}

// Store owns the ordered task list. Each mutation is saved before the method
// returns. A failed save rolls the mutation back so memory and storage agree.
type Store struct {
	tasks []task.Task
	saver Saver
}

func NewStore(saver Saver, initial []task.Task) *Store {
	tasks := make([]task.Task, len(initial))
	copy(tasks, initial)
	return &Store{tasks: tasks, saver: saver}
}

// Tasks returns a copy of the list in store order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Find(id int64) (task.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

func (s *Store) Add(ctx context.Context, t task.Task) error {
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", task.ErrInvalidStatus, t.Status)
	}
	prev := s.tasks
	s.tasks = append(s.Tasks(), t)
	return s.commit(ctx, prev)
}

// Remove deletes the task with id. It reports false, and saves nothing, when
// no such task exists.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	prev := s.tasks
	next := make([]task.Task, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	s.tasks = next
	if err := s.commit(ctx, prev); err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus moves task id to status. It reports false, and saves nothing, when
// the task is missing or already has that status.
func (s *Store) SetStatus(ctx context.Context, id int64, status task.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", task.ErrInvalidStatus, status)
	}
	i := s.index(id)
	if i < 0 || s.tasks[i].Status == status {
		return false, nil
	}
	prev := s.tasks
	s.tasks = s.Tasks()
	s.tasks[i].Status = status
	if err := s.commit(ctx, prev); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) commit(ctx context.Context, prev []task.Task) error {
	if err := s.saver.SaveTasks(ctx, s.Tasks()); err != nil {
		s.tasks = prev
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
