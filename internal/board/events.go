package board

import "taskboard/internal/task"

// Event is a user gesture fed to Controller.Dispatch.
type Event interface {
	isEvent()
}

// Submit creates a task from the add form.
type Submit struct{ Draft task.Draft }

// DragStart picks up a task.
type DragStart struct{ TaskID int64 }

// DragEnter and DragLeave move the drop highlight. They never change tasks.
type DragEnter struct{ Status task.Status }
type DragLeave struct{ Status task.Status }

// Drop releases the carried task over a column.
type Drop struct{ Status task.Status }

// DragCancel releases the carried task outside any column.
type DragCancel struct{}

// RequestDelete asks for confirmation before deleting a task.
type RequestDelete struct{ TaskID int64 }

type ConfirmDelete struct{}
type DeclineDelete struct{}

// Search replaces the filter query.
type Search struct{ Query string }

type ToggleTheme struct{}

func (Submit) isEvent()        {}
func (DragStart) isEvent()     {}
func (DragEnter) isEvent()     {}
func (DragLeave) isEvent()     {}
func (Drop) isEvent()          {}
func (DragCancel) isEvent()    {}
func (RequestDelete) isEvent() {}
func (ConfirmDelete) isEvent() {}
func (DeclineDelete) isEvent() {}
func (Search) isEvent()        {}
func (ToggleTheme) isEvent()   {}
