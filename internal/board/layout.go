package board

import "taskboard/internal/task"

// EmptyPlaceholder is shown in place of a column's list when it has no tasks.
const EmptyPlaceholder = "No tasks"

type Column struct {
	Status task.Status
	Label  string
	Tasks  []task.Task
	Count  int
}

func (c Column) Empty() bool {
	return c.Count == 0
}

type Layout struct {
	Columns []Column
}

// Column returns the column for status.
func (l Layout) Column(status task.Status) (Column, bool) {
	for _, c := range l.Columns {
		if c.Status == status {
			return c, true
		}
	}
	return Column{}, false
}

func ColumnLabel(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "To Do"
	case task.StatusInProgress:
		return "In Progress"
	case task.StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Project groups view into one column per status, in board order. Counts are
// of the tasks in view, not of the whole store.
func Project(view []task.Task) Layout {
	statuses := task.Statuses()
	cols := make([]Column, len(statuses))
	pos := make(map[task.Status]int, len(statuses))
	for i, s := range statuses {
		cols[i] = Column{Status: s, Label: ColumnLabel(s)}
		pos[s] = i
	}
	for _, t := range view {
		i, ok := pos[t.Status]
		if !ok {
			continue
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	for i := range cols {
		cols[i].Count = len(cols[i].Tasks)
	}
	return Layout{Columns: cols}
}
