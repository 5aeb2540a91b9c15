package board

import (
	"strings"

	"taskboard/internal/task"
)

type FilterOptions struct {
	// IncludeDescription also matches the query against descriptions.
	IncludeDescription bool
}

// Filter returns the tasks whose title contains query, ignoring case, in
// their original order. Only the empty query returns every task; spaces in a
// query are matched like any other character. The result is a fresh slice.
func Filter(tasks []task.Task, query string, opts FilterOptions) []task.Task {
	q := strings.ToLower(query)
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if q == "" || matches(t, q, opts) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t task.Task, q string, opts FilterOptions) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	return opts.IncludeDescription && strings.Contains(strings.ToLower(t.Description), q)
}
