// Package notify keeps the transient status messages shown after each board
// action. A toast fades in shortly after it is pushed, stays for a fixed time,
// then fades out and is removed. The caller drives the phases by applying the
// steps Push returns when their delays elapse.
package notify

import "time"

type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Error   Kind = "error"
)

const (
	FadeInDelay = 10 * time.Millisecond
	Display     = 3 * time.Second
	FadeOut     = 300 * time.Millisecond
)

type Phase int

const (
	Pending Phase = iota
	Shown
	Leaving
	Removed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Shown:
		return "shown"
	case Leaving:
		return "leaving"
	case Removed:
		return "removed"
	}
	return "unknown"
}

type Notification struct {
	Message string
	Kind    Kind
}

type Toast struct {
	ID      int
	Message string
	Kind    Kind
	Phase   Phase
}

// Step is a phase change due After the toast was pushed.
type Step struct {
	ID    int
	Phase Phase
	After time.Duration
}

// Center holds every toast that has not been removed yet.
type Center struct {
	nextID int
	toasts []Toast
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Push(n Notification) (Toast, []Step) {
	c.nextID++
	t := Toast{ID: c.nextID, Message: n.Message, Kind: n.Kind, Phase: Pending}
	c.toasts = append(c.toasts, t)
	return t, []Step{
		{ID: t.ID, Phase: Shown, After: FadeInDelay},
		{ID: t.ID, Phase: Leaving, After: Display},
		{ID: t.ID, Phase: Removed, After: Display + FadeOut},
	}
}

// Advance moves toast id to phase. Unknown ids and backward moves are ignored.
func (c *Center) Advance(id int, phase Phase) {
	for i := range c.toasts {
		if c.toasts[i].ID != id {
			continue
		}
		if phase <= c.toasts[i].Phase {
			return
		}
		if phase == Removed {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
		c.toasts[i].Phase = phase
		return
	}
}

// Visible returns the live toasts, oldest first.
func (c *Center) Visible() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

func (c *Center) Len() int {
	return len(c.toasts)
}
