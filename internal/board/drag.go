package board

import "taskboard/internal/task"

// Drag is the transfer state: idle, or carrying TaskID. Over is the column
// currently highlighted as a drop target and is purely cosmetic.
type Drag struct {
	Active bool
	TaskID int64
	Over   task.Status
}

func (d Drag) Carrying(id int64) bool {
	return d.Active && d.TaskID == id
}

func (d Drag) start(id int64) Drag {
	return Drag{Active: true, TaskID: id}
}

func (d Drag) enter(s task.Status) Drag {
	d.Over = s
	return d
}

func (d Drag) leave(s task.Status) Drag {
	if d.Over == s {
		d.Over = ""
	}
	return d
}
